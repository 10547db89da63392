package ast

import (
	"testing"

	"lambcalc/pkg/fresh"
)

// (fn a => (a + (fn a => a+1) 1) + a) 2
func buildRestoreScenario() Exp {
	innerBody := &BopExp{Op: Plus, Arg1: &VarExp{Name: "a"}, Arg2: &IntExp{Value: 1}}
	innerApp := &AppExp{Fn: &LamExp{Param: "a", Body: innerBody}, Arg: &IntExp{Value: 1}}
	innerBop := &BopExp{Op: Plus, Arg1: &VarExp{Name: "a"}, Arg2: innerApp}
	body := &BopExp{Op: Plus, Arg1: innerBop, Arg2: &VarExp{Name: "a"}}
	outerLam := &LamExp{Param: "a", Body: body}
	return &AppExp{Fn: outerLam, Arg: &IntExp{Value: 2}}
}

// Alpha-rename restores the outer binding once the inner shadowing lambda
// exits, so the trailing reference to "a" still binds to the outer
// parameter.
func TestRenameRestoresBindingOnLamExit(t *testing.T) {
	root := buildRestoreScenario()
	if err := Rename(root, fresh.New()); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	want := "((fn a0 => ((a0 + ((fn a1 => (a1 + 1)) 1)) + a0)) 2)"
	if got := Dump(root); got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}
}

func TestRenameNotInScope(t *testing.T) {
	root := &VarExp{Name: "x"}
	err := Rename(root, fresh.New())
	if err == nil {
		t.Fatal("expected NotInScopeError, got nil")
	}
	if _, ok := err.(*NotInScopeError); !ok {
		t.Fatalf("expected *NotInScopeError, got %T", err)
	}
}

func TestRenameIndependentLambdasGetDistinctNames(t *testing.T) {
	id := func() Exp { return &LamExp{Param: "x", Body: &VarExp{Name: "x"}} }
	root := &AppExp{Fn: id(), Arg: &AppExp{Fn: id(), Arg: &IntExp{Value: 1}}}

	if err := Rename(root, fresh.New()); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}

	want := "((fn x1 => x1) ((fn x0 => x0) 1))"
	if got := Dump(root); got != want {
		t.Fatalf("Dump() = %q, want %q", got, want)
	}
}
