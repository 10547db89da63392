package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lambcalc/pkg/ast"
)

func TestParseArithmeticPrecedence(t *testing.T) {
	exp, err := Parse([]byte("(2*3)+4"))
	require.NoError(t, err)
	require.Equal(t, "((2 * 3) + 4)", ast.Dump(exp))
}

func TestParseArithmeticWithoutParens(t *testing.T) {
	// Times must bind tighter than Plus even with no parentheses.
	exp, err := Parse([]byte("2*3+4"))
	require.NoError(t, err)
	require.Equal(t, "((2 * 3) + 4)", ast.Dump(exp))
}

func TestParseLambdaApplication(t *testing.T) {
	exp, err := Parse([]byte("(fn x => x + 1) 1"))
	require.NoError(t, err)
	require.Equal(t, "((fn x => (x + 1)) 1)", ast.Dump(exp))
}

func TestParseApplicationIsLeftAssociativeAndBindsTighterThanPlus(t *testing.T) {
	exp, err := Parse([]byte("f a b + 1"))
	require.NoError(t, err)
	require.Equal(t, "(((f a) b) + 1)", ast.Dump(exp))
}

func TestParseIfThenElse(t *testing.T) {
	exp, err := Parse([]byte("if 1 then 2 else 3"))
	require.NoError(t, err)
	require.Equal(t, "(if 1 then 2 else 3)", ast.Dump(exp))
}

func TestParseNestedIfInElseBranch(t *testing.T) {
	exp, err := Parse([]byte("if 1 then 2 else if 3 then 4 else 5"))
	require.NoError(t, err)
	require.Equal(t, "(if 1 then 2 else (if 3 then 4 else 5))", ast.Dump(exp))
}

func TestParseTrailingInputIsAnError(t *testing.T) {
	_, err := Parse([]byte("1 2 )"))
	require.Error(t, err)
}

func TestParseMissingArrowIsAnError(t *testing.T) {
	_, err := Parse([]byte("fn x x"))
	require.Error(t, err)
}
