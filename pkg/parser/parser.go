// Package parser turns a lexer.Token stream into a surface ast.Exp using
// Pratt (operator-precedence) climbing, the same algorithm
// original_source/src/parser.cpp's Parser::parseBinOp implements: no
// grammar here is context-free table-driven, since function application
// (juxtaposition) is itself an operator that must bind tighter than + - *
// and associate to the left, which a single fixed precedence table alone
// cannot express as cleanly as a climbing parser does.
package parser

import (
	"fmt"
	"strconv"

	"lambcalc/pkg/ast"
	"lambcalc/pkg/lexer"
)

// Parse lexes and parses source into a surface expression.
func Parse(source []byte) (ast.Exp, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	exp, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, fmt.Errorf("parser: unexpected trailing input at %q", p.peek().Text)
	}
	return exp, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() lexer.Token {
	if p.atEnd() {
		return lexer.Token{Kind: -1, Text: "<eof>"}
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.peek()
	p.pos++
	return tok
}

func (p *parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	if p.atEnd() || p.peek().Kind != kind {
		return lexer.Token{}, fmt.Errorf("parser: expected %s, got %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

// startsPrimary reports whether the current token could begin a new
// primary expression — and therefore, in term position, an application
// argument.
func (p *parser) startsPrimary() bool {
	if p.atEnd() {
		return false
	}
	switch p.peek().Kind {
	case lexer.Int, lexer.Ident, lexer.Fn, lexer.If, lexer.LParen:
		return true
	default:
		return false
	}
}

// appLbp/appRbp give juxtaposition (application) a binding power higher
// than any arithmetic operator, and appRbp > appLbp makes it left
// associative: "f a b" parses as (f a) b, matching
// original_source/src/parser.cpp's constants of the same name.
const (
	appLbp = 100
	appRbp = 101
)

// infixBp mirrors original_source/src/parser.cpp's infixBp_ table: each
// operator's (left binding power, right binding power). Equal lbp/rbp+1
// pairs make + and - left associative; * binds tighter than either.
var infixBp = map[lexer.Kind]struct {
	op       ast.Bop
	lbp, rbp int
}{
	lexer.Plus:  {ast.Plus, 1, 2},
	lexer.Minus: {ast.Minus, 1, 2},
	lexer.Times: {ast.Times, 3, 4},
}

// parseBinOp implements precedence climbing: it parses a primary, then
// repeatedly extends it with whatever infix operator or application binds
// at least as tightly as minBp allows, recursing at each operator's right
// binding power for the next operand.
func (p *parser) parseBinOp(minBp int) (ast.Exp, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		if !p.atEnd() {
			if entry, ok := infixBp[p.peek().Kind]; ok {
				if entry.lbp < minBp {
					break
				}
				p.advance()
				rhs, err := p.parseBinOp(entry.rbp)
				if err != nil {
					return nil, err
				}
				lhs = &ast.BopExp{Op: entry.op, Arg1: lhs, Arg2: rhs}
				continue
			}
		}

		if p.startsPrimary() {
			if appLbp < minBp {
				break
			}
			rhs, err := p.parseBinOp(appRbp)
			if err != nil {
				return nil, err
			}
			lhs = &ast.AppExp{Fn: lhs, Arg: rhs}
			continue
		}

		break
	}

	return lhs, nil
}

func (p *parser) parsePrimary() (ast.Exp, error) {
	if p.atEnd() {
		return nil, fmt.Errorf("parser: unexpected end of input")
	}

	switch p.peek().Kind {
	case lexer.Int:
		tok := p.advance()
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid integer literal %q: %w", tok.Text, err)
		}
		return &ast.IntExp{Value: n}, nil

	case lexer.Ident:
		tok := p.advance()
		return &ast.VarExp{Name: tok.Text}, nil

	case lexer.Fn:
		return p.parseFn()

	case lexer.If:
		return p.parseIf()

	case lexer.LParen:
		return p.parseParens()

	default:
		return nil, fmt.Errorf("parser: unexpected token %q", p.peek().Text)
	}
}

// parseFn parses "fn " Ident "=>" Exp.
func (p *parser) parseFn() (ast.Exp, error) {
	p.advance() // fn
	param, err := p.expect(lexer.Ident, "parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Arrow, `"=>"`); err != nil {
		return nil, err
	}
	body, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	return &ast.LamExp{Param: param.Text, Body: body}, nil
}

// parseIf parses "if" Exp "then" Exp "else" Exp.
func (p *parser) parseIf() (ast.Exp, error) {
	p.advance() // if
	cond, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Then, `"then"`); err != nil {
		return nil, err
	}
	thenExp, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Else, `"else"`); err != nil {
		return nil, err
	}
	elseExp, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	return &ast.IfExp{Cond: cond, Then: thenExp, Else: elseExp}, nil
}

// parseParens parses "(" Exp ")".
func (p *parser) parseParens() (ast.Exp, error) {
	p.advance() // (
	inner, err := p.parseBinOp(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen, `")"`); err != nil {
		return nil, err
	}
	return inner, nil
}
