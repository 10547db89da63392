package lexer

import (
	"reflect"
	"testing"
)

func TestLexArithmeticAndLambda(t *testing.T) {
	got, err := Lex([]byte("fn x => x + 1"))
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := []Token{
		{Kind: Fn, Text: "fn"},
		{Kind: Ident, Text: "x"},
		{Kind: Arrow, Text: "=>"},
		{Kind: Ident, Text: "x"},
		{Kind: Plus, Text: "+"},
		{Kind: Int, Text: "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexKeywordsAndIdentifiersDontCollide(t *testing.T) {
	got, err := Lex([]byte("if fnord then ifX else elsewhere"))
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := []Token{
		{Kind: If, Text: "if"},
		{Kind: Ident, Text: "fnord"},
		{Kind: Then, Text: "then"},
		{Kind: Ident, Text: "ifX"},
		{Kind: Else, Text: "else"},
		{Kind: Ident, Text: "elsewhere"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}

func TestLexParensAndOperators(t *testing.T) {
	got, err := Lex([]byte("(2*3)+4-1"))
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := []Token{
		{Kind: LParen, Text: "("},
		{Kind: Int, Text: "2"},
		{Kind: Times, Text: "*"},
		{Kind: Int, Text: "3"},
		{Kind: RParen, Text: ")"},
		{Kind: Plus, Text: "+"},
		{Kind: Int, Text: "4"},
		{Kind: Minus, Text: "-"},
		{Kind: Int, Text: "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lex() = %#v, want %#v", got, want)
	}
}
