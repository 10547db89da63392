package hoist

import (
	"fmt"
	"strings"

	"lambcalc/pkg/anf"
)

// Dump renders fns the way the driver's "compile" subcommand prints a
// finished pipeline run: one "Function name(params) { ... }" per entry,
// entry block first, then each of its Blocks in collection order. Like
// ast.Dump and anf.Dump, this is diagnostic-only and not subject to the
// stack-safety discipline the compile passes follow.
func Dump(fns []Function) string {
	var b strings.Builder
	for i, fn := range fns {
		if i > 0 {
			b.WriteString("\n")
		}
		dumpFunction(&b, fn)
	}
	return b.String()
}

func dumpFunction(b *strings.Builder, fn Function) {
	fmt.Fprintf(b, "Function %s(%s) {\n", fn.Name, strings.Join(fn.Params, ", "))
	dumpBlock(b, fn.Entry)
	for _, blk := range fn.Blocks {
		dumpBlock(b, blk)
	}
	b.WriteString("}\n")
}

func dumpBlock(b *strings.Builder, blk Block) {
	if blk.Slot != nil {
		fmt.Fprintf(b, "  %s(%s): %s\n", blk.Name, *blk.Slot, anf.Dump(blk.Body))
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", blk.Name, anf.Dump(blk.Body))
}
