package compiler

import (
	"strings"
	"testing"
)

// End-to-end compiles exercising the whole parse -> rename -> ANF ->
// closure-convert -> hoist pipeline at once.

func TestCompileArithmetic(t *testing.T) {
	result, err := Compile([]byte("(2*3)+4"))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(result.Hoisted) != 1 {
		t.Fatalf("len(Hoisted) = %d, want 1 (just main)", len(result.Hoisted))
	}
	if result.Hoisted[0].Name != "main" {
		t.Fatalf("Hoisted[0].Name = %s, want main", result.Hoisted[0].Name)
	}
}

func TestCompileApplicationProducesClosureMachinery(t *testing.T) {
	result, err := Compile([]byte("(fn x => x + 1) 1"))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(result.Hoisted) != 2 {
		t.Fatalf("len(Hoisted) = %d, want 2 (the lambda plus main)", len(result.Hoisted))
	}
	if result.Hoisted[1].Name != "main" {
		t.Fatalf("Hoisted[len-1].Name = %s, want main (bootstrap convention)", result.Hoisted[1].Name)
	}

	lambda := result.Hoisted[0]
	if len(lambda.Params) != 2 {
		t.Fatalf("lambda.Params = %v, want [closureN, x] (env param prepended by closure conversion)", lambda.Params)
	}
}

func TestCompileResetsCounterAcrossCalls(t *testing.T) {
	first, err := Compile([]byte("1 + 1"))
	if err != nil {
		t.Fatalf("first Compile returned error: %v", err)
	}
	second, err := Compile([]byte("1 + 1"))
	if err != nil {
		t.Fatalf("second Compile returned error: %v", err)
	}
	if first.Hoisted[0].Entry.Name != second.Hoisted[0].Entry.Name {
		t.Fatalf("entry block names diverged across independent compiles: %s vs %s",
			first.Hoisted[0].Entry.Name, second.Hoisted[0].Entry.Name)
	}
}

func TestCompileNotInScope(t *testing.T) {
	_, err := Compile([]byte("x + 1"))
	if err == nil {
		t.Fatal("expected a NotInScope error, got nil")
	}
	if !strings.Contains(err.Error(), "not in scope") {
		t.Fatalf("error = %v, want it to mention 'not in scope'", err)
	}
}

func TestCompileParseError(t *testing.T) {
	_, err := Compile([]byte("fn => 1"))
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}
