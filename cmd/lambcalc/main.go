package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/teris-io/cli"
	"github.com/yasushi-saito/readline"

	"lambcalc/pkg/ast"
	"lambcalc/pkg/compiler"
	"lambcalc/pkg/hoist"
)

// reportCompileError prints err, using errors.Cause to recover the
// underlying pass error compiler.Compile wrapped (a NotInScope error vs.
// a parse or ANF-conversion failure) so the driver can tell a genuine
// scope error apart from a parser failure in its own wording, the way a
// plain fmt.Errorf("%w", ...) chain could not without string matching.
func reportCompileError(err error) {
	switch errors.Cause(err).(type) {
	case *ast.NotInScopeError:
		fmt.Printf("ERROR: %s (fatal: the current program is discarded)\n", err)
	default:
		fmt.Printf("ERROR: %s\n", err)
	}
}

var compileDescription = strings.ReplaceAll(`
Compiles a lambda calculus source file through the full middle end --
alpha-rename, ANF conversion with join points, closure conversion and
hoisting -- and prints the resulting list of first-order functions.
`, "\n", " ")

var CompileCmd = cli.NewCommand("compile", compileDescription).
	WithArg(cli.NewArg("input", "The source (.lc) file to compile")).
	WithAction(CompileHandler)

func CompileHandler(args []string, options map[string]string) int {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	result, err := compiler.Compile(source)
	if err != nil {
		reportCompileError(err)
		return -1
	}

	fmt.Println(hoist.Dump(result.Hoisted))
	return 0
}

var replDescription = strings.ReplaceAll(`
Starts an interactive read-compile-print loop: each line is compiled on
its own (counter reset between lines) and the resulting functions are
printed back.
`, "\n", " ")

var ReplCmd = cli.NewCommand("repl", replDescription).
	WithAction(ReplHandler)

func ReplHandler(args []string, options map[string]string) int {
	if err := readline.Init(readline.Opts{Name: "lambcalc", ExpandHistory: true}); err != nil {
		fmt.Printf("ERROR: readline.Init: %s\n", err)
		return -1
	}

	for {
		line, err := readline.Readline("lambcalc> ")
		if err != nil {
			// EOF (Ctrl-D) ends the session cleanly.
			return 0
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		result, err := compiler.Compile([]byte(trimmed))
		if err != nil {
			reportCompileError(err)
		} else {
			fmt.Println(hoist.Dump(result.Hoisted))
		}

		if err := readline.AddHistory(trimmed); err != nil {
			fmt.Printf("ERROR: readline.AddHistory: %s\n", err)
		}
	}
}

var Lambcalc = cli.New("A small compiler for an untyped lambda calculus with integers, arithmetic, conditionals and closures.").
	WithCommand(CompileCmd).
	WithCommand(ReplCmd)

func main() { os.Exit(Lambcalc.Run(os.Args, os.Stdout)) }
