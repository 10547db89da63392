// Package anf implements the ANF (A-normal form) intermediate
// representation and the second pass of the pipeline: converting a
// (renamed) surface ast.Exp into ANF, in which every intermediate result
// is bound to a name and evaluation order is explicit.
package anf

import "lambcalc/pkg/ast"

// ----------------------------------------------------------------------------
// Values

// Value is a trivial, already-evaluated operand: an integer literal, a
// local binder reference, or a top-level (post closure-conversion) name.
// Implemented by IntValue, VarValue and GlobValue.
type Value interface{}

// IntValue is an integer literal operand.
type IntValue struct{ Value int64 }

// VarValue refers to a local binder introduced somewhere in the enclosing
// ANF term (a Fun/Join parameter, or the result name of an App/Bop/Tuple/Proj).
type VarValue struct{ Name string }

// GlobValue refers to a hoisted, top-level function by name. Only
// introduced by closure conversion and consumed by hoisting.
type GlobValue struct{ Name string }

// ----------------------------------------------------------------------------
// Expressions

// Exp is the ANF expression type. Every variant but HaltExp, JumpExp and
// IfExp carries a Rest continuation, making every ANF term a sequence of
// bindings ending in a Halt, a Jump or an If whose two arms are again such
// terms. Implemented by HaltExp,
// FunExp, JoinExp, JumpExp, AppExp, BopExp, IfExp, TupleExp and ProjExp.
//
// As with ast.Exp, nodes are always stored behind their pointer type so
// that a Rest (or Body/Then/Else) field is addressable, letting the
// closure-conversion and hoisting passes rewrite subtrees in place via a
// pointer to the owning slot rather than by rebuilding parents.
type Exp interface{}

// HaltExp terminates the program (or a Fun/Join body) with a final value.
type HaltExp struct{ Value Value }

// FunExp defines a (possibly nested, pre-hoisting) function: Name(Params) = Body,
// with Rest as the scope in which Name is available as a first-class value.
// Name and every entry of Params are binders; Name is bound within Rest,
// Params are bound within Body — Name is not in scope inside Body, so this
// form has no native recursion.
type FunExp struct {
	Name   string
	Params []string
	Body   Exp
	Rest   Exp
}

// JoinExp introduces a local join point: a label with at most one parameter
// (Slot), reachable only via a Jump naming it. Slot is bound within Body;
// Name is bound within Rest. A join point exists only within the function
// that defines it — it is never itself hoisted to the top level.
type JoinExp struct {
	Name string
	Slot *string // nil: the join point takes no parameter
	Body Exp
	Rest Exp
}

// JumpExp transfers control to an enclosing join point, optionally handing
// it a value.
type JumpExp struct {
	JoinName  string
	SlotValue Value
	HasSlot   bool
}

// AppExp calls FunName with Args, binding the result to Name in Rest.
type AppExp struct {
	Name    string
	FunName string
	Args    []Value
	Rest    Exp
}

// BopExp applies a binary operator to two already-evaluated operands,
// binding the result to Name in Rest.
type BopExp struct {
	Name string
	Op   ast.Bop
	Arg1 Value
	Arg2 Value
	Rest Exp
}

// IfExp branches on Cond. Before hoisting, Then and Else are themselves ANF
// expressions; hoisting replaces both with Jumps to the blocks it carves out
// of them.
type IfExp struct {
	Cond Value
	Then Exp
	Else Exp
}

// TupleExp allocates a tuple of Values, binding it to Name in Rest. Closure
// conversion is the only pass that introduces these: a tuple's slot 0 is
// always a function's code pointer (a GlobValue), and slots 1..n are its
// captured free variables.
type TupleExp struct {
	Name   string
	Values []Value
	Rest   Exp
}

// ProjExp projects element Index out of the tuple named Tuple, binding it
// to Name in Rest.
type ProjExp struct {
	Name  string
	Tuple string
	Index int
	Rest  Exp
}
