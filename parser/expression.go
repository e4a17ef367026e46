package parser

import (
	"github.com/beanfmt/beanfmt/ast"
)

// Expression parsing for the arithmetic expressions Beancount allows
// wherever an amount's number is written, e.g. "(40.00 / 3 + 5) USD".
//
// Operator precedence (low to high):
//  1. + -     (addition, subtraction)
//  2. * /     (multiplication, division)
//  3. ( )     (parentheses, highest)
//
// Grammar:
//
//	expression  → term (('+' | '-') term)*
//	term        → factor (('*' | '/') factor)*
//	factor      → NUMBER | '(' expression ')' | '-' factor

// parseNumberExpr parses (without evaluating) a number expression, returning
// the expression tree. The tree is preserved rather than collapsed to its
// decimal value so that arithmetic written in the source survives
// formatting unevaluated.
func (p *Parser) parseNumberExpr() (ast.NumberExpr, error) {
	return p.parseAddSubtract()
}

func (p *Parser) parseAddSubtract() (ast.NumberExpr, error) {
	left, err := p.parseMultiplyDivide()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != PLUS && tok.Type != MINUS {
			break
		}
		p.advance()

		right, err := p.parseMultiplyDivide()
		if err != nil {
			return nil, err
		}

		op := "+"
		if tok.Type == MINUS {
			op = "-"
		}
		left = &ast.NumberAddExpr{Left: left, Op: op, Right: right}
	}

	return left, nil
}

func (p *Parser) parseMultiplyDivide() (ast.NumberExpr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != ASTERISK && tok.Type != SLASH {
			break
		}
		p.advance()

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		op := "*"
		if tok.Type == SLASH {
			op = "/"
		}
		left = &ast.NumberMulExpr{Left: left, Op: op, Right: right}
	}

	return left, nil
}

func (p *Parser) parsePrimary() (ast.NumberExpr, error) {
	tok := p.peek()

	if tok.Type == LPAREN {
		p.advance()
		inner, err := p.parseNumberExpr()
		if err != nil {
			return nil, err
		}
		if !p.check(RPAREN) {
			return nil, p.error("expected ')' after expression")
		}
		p.advance()
		return &ast.NumberParenExpr{Inner: inner}, nil
	}

	if tok.Type == MINUS {
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.NumberUnaryExpr{Op: "-", Operand: operand}, nil
	}

	if tok.Type == NUMBER {
		p.advance()
		return &ast.Number{Raw: tok.String(p.source)}, nil
	}

	return nil, p.errorAtToken(tok, "expected number or '(' in expression, got %s", tok.Type)
}
