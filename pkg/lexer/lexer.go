// Package lexer tokenizes lambda calculus source text. Tokenizing is the
// one piece of goparsec's declarative combinator style (github.com/
// prataprc/goparsec) this compiler keeps: classifying characters into
// tokens is exactly the kind of flat, non-self-referential grammar
// OrdChoice/ManyUntil express well. Parsing a token stream into an
// expression tree needs operator-precedence climbing instead (see
// pkg/parser), which goparsec's eager combinators cannot express without
// already knowing the precedence table ahead of parse time.
package lexer

import (
	"fmt"

	pc "github.com/prataprc/goparsec"
)

// Kind enumerates the lexical categories this language's tokens fall into.
type Kind int

const (
	Int Kind = iota
	Ident
	Fn
	If
	Then
	Else
	Arrow
	LParen
	RParen
	Plus
	Minus
	Times
)

// Token is a single classified lexeme.
type Token struct {
	Kind Kind
	Text string
}

var keywords = map[string]Kind{
	"fn":   Fn,
	"if":   If,
	"then": Then,
	"else": Else,
}

// tokenAST is the traversable tree goparsec builds up as pTokens matches;
// every combinator below is registered against it, mirroring
// pkg/asm/parsing.go's "var ast = pc.NewAST(...)" convention.
var tokenAST = pc.NewAST("tokens", 0)

var (
	pArrow  = pc.Atom("=>", "ARROW")
	pLParen = pc.Atom("(", "LPAREN")
	pRParen = pc.Atom(")", "RPAREN")
	pPlus   = pc.Atom("+", "PLUS")
	pMinus  = pc.Atom("-", "MINUS")
	pTimes  = pc.Atom("*", "TIMES")
	// A word is classified into a keyword or an identifier after parsing,
	// the same way lexer.cpp's getToken() does it (an identifier scan
	// followed by a keyword table lookup) rather than racing keyword Atoms
	// against the identifier Token, which would wrongly prefix-match inside
	// a longer identifier like "fnord".
	pWord   = pc.Token(`[A-Za-z_][A-Za-z0-9_]*`, "WORD")
	pNumber = pc.Int()

	// Single-character operators are tried before pNumber so a leading '-'
	// is always the Minus operator, never folded into a signed literal.
	pToken  = tokenAST.OrdChoice("token", nil, pArrow, pLParen, pRParen, pPlus, pMinus, pTimes, pWord, pNumber)
	pTokens = tokenAST.ManyUntil("tokens", nil, pToken, pc.End())
)

// Lex tokenizes source into a flat Token slice, discarding whitespace.
func Lex(source []byte) ([]Token, error) {
	root, _ := tokenAST.Parsewith(pTokens, pc.NewScanner(source))
	if root == nil {
		return nil, fmt.Errorf("lex: could not tokenize input")
	}

	children := root.GetChildren()
	tokens := make([]Token, 0, len(children))
	for _, child := range children {
		tok, err := classify(child)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func classify(node pc.Queryable) (Token, error) {
	switch node.GetName() {
	case "ARROW":
		return Token{Kind: Arrow, Text: "=>"}, nil
	case "LPAREN":
		return Token{Kind: LParen, Text: "("}, nil
	case "RPAREN":
		return Token{Kind: RParen, Text: ")"}, nil
	case "PLUS":
		return Token{Kind: Plus, Text: "+"}, nil
	case "MINUS":
		return Token{Kind: Minus, Text: "-"}, nil
	case "TIMES":
		return Token{Kind: Times, Text: "*"}, nil
	case "INT":
		return Token{Kind: Int, Text: node.GetValue()}, nil
	case "WORD":
		text := node.GetValue()
		if kind, ok := keywords[text]; ok {
			return Token{Kind: kind, Text: text}, nil
		}
		return Token{Kind: Ident, Text: text}, nil
	default:
		return Token{}, fmt.Errorf("lex: unrecognized token node %q", node.GetName())
	}
}
