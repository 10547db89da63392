// Package compiler wires the four middle-end passes together into the one
// entry point cmd/lambcalc drives: parse, alpha-rename, convert to ANF,
// closure-convert, then hoist into a flat function list.
package compiler

import (
	"github.com/pkg/errors"

	"lambcalc/pkg/anf"
	"lambcalc/pkg/ast"
	"lambcalc/pkg/closure"
	"lambcalc/pkg/fresh"
	"lambcalc/pkg/hoist"
	"lambcalc/pkg/parser"
)

// Result is everything a caller (the CLI driver, a diagnostic dump, a
// future backend) might want out of one compile.
type Result struct {
	Surface ast.Exp
	Hoisted []hoist.Function
}

// Compile runs source through the whole pipeline. Each pass gets the same
// fresh.Counter, so no two binders introduced anywhere during this compile
// ever collide — a fresh Counter per call keeps separate compiles
// independent of each other. Every fallible pass's error is wrapped with
// errors.Wrap rather than fmt.Errorf so that a caller at the driver
// boundary (cmd/lambcalc) can recover the original
// NotInScopeError/MustApplyNamedError with errors.Cause without parsing
// message text — the passes themselves still use %w internally where an
// error only needs to cross one function call. Parse failures have no
// error type of their own: errors.Cause yields the parser's plain error.
func Compile(source []byte) (*Result, error) {
	surface, err := parser.Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "compile: parse")
	}

	counter := fresh.New()

	if err := ast.Rename(surface, counter); err != nil {
		return nil, errors.Wrap(err, "compile: alpha-rename")
	}

	anfExp, err := anf.ConvertDefunc(surface, counter)
	if err != nil {
		return nil, errors.Wrap(err, "compile: ANF conversion")
	}

	converted := closure.Convert(anfExp, counter)
	fns := hoist.Hoist(converted, counter)

	return &Result{Surface: surface, Hoisted: fns}, nil
}
