package ast

import "github.com/shopspring/decimal"

// NumberExpr is the sum type over arithmetic expressions that can appear
// wherever a numeric amount is written: a plain decimal, a parenthesized
// sub-expression, a unary minus, or a binary +/-/*// expression. Beancount
// lets you write costs and posting amounts as small arithmetic expressions
// (e.g. "(10 + 20) USD"); the formatter preserves the expression shape
// rather than collapsing it to its evaluated value.
type NumberExpr interface {
	Node

	// Text renders the expression back to source form, normalizing
	// operator spacing to a single space on each side and recursing into
	// sub-expressions. The format package writes an amount's number from
	// Text and applies the thousands-separator policy only when the text is
	// a single plain number; numbers inside a compound expression are
	// written exactly as Text returns them.
	Text() string

	// Decimal evaluates the expression to its decimal value.
	Decimal() decimal.Decimal
}

// Number is a leaf numeric literal, stored as the original decimal text to
// avoid floating-point precision loss and to preserve the exact fractional
// digits the author wrote.
type Number struct {
	Raw string
}

var _ NumberExpr = (*Number)(nil)

func (n *Number) Kind() Kind { return KindNumber }
func (n *Number) Text() string {
	return n.Raw
}
func (n *Number) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(n.Raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
func (n *Number) ChildrenFormatted() []Edge {
	return []Edge{{Child: NewToken(TokNumber, n.Raw)}}
}

// NumberParenExpr is a parenthesized sub-expression: "(" expr ")".
type NumberParenExpr struct {
	Inner NumberExpr
}

var _ NumberExpr = (*NumberParenExpr)(nil)

func (n *NumberParenExpr) Kind() Kind   { return KindNumberParenExpr }
func (n *NumberParenExpr) Text() string { return "(" + n.Inner.Text() + ")" }
func (n *NumberParenExpr) Decimal() decimal.Decimal {
	return n.Inner.Decimal()
}
func (n *NumberParenExpr) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokParen, "(")},
		{Child: n.Inner},
		{Child: NewToken(TokParen, ")")},
	}
}

// NumberUnaryExpr is a unary-minus expression: "-" expr.
type NumberUnaryExpr struct {
	Op      string
	Operand NumberExpr
}

var _ NumberExpr = (*NumberUnaryExpr)(nil)

func (n *NumberUnaryExpr) Kind() Kind   { return KindNumberUnaryExpr }
func (n *NumberUnaryExpr) Text() string { return n.Op + n.Operand.Text() }
func (n *NumberUnaryExpr) Decimal() decimal.Decimal {
	return n.Operand.Decimal().Neg()
}
func (n *NumberUnaryExpr) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: NewToken(TokOperator, n.Op)},
		{Child: n.Operand},
	}
}

// NumberAddExpr is an addition or subtraction: left (+ | -) right.
type NumberAddExpr struct {
	Left  NumberExpr
	Op    string // "+" or "-"
	Right NumberExpr
}

var _ NumberExpr = (*NumberAddExpr)(nil)

func (n *NumberAddExpr) Kind() Kind { return KindNumberAddExpr }
func (n *NumberAddExpr) Text() string {
	return n.Left.Text() + " " + n.Op + " " + n.Right.Text()
}
func (n *NumberAddExpr) Decimal() decimal.Decimal {
	if n.Op == "-" {
		return n.Left.Decimal().Sub(n.Right.Decimal())
	}
	return n.Left.Decimal().Add(n.Right.Decimal())
}
func (n *NumberAddExpr) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: n.Left},
		{Child: NewToken(TokOperator, n.Op)},
		{Child: n.Right},
	}
}

// NumberMulExpr is a multiplication or division: left (* | /) right.
type NumberMulExpr struct {
	Left  NumberExpr
	Op    string // "*" or "/"
	Right NumberExpr
}

var _ NumberExpr = (*NumberMulExpr)(nil)

func (n *NumberMulExpr) Kind() Kind { return KindNumberMulExpr }
func (n *NumberMulExpr) Text() string {
	return n.Left.Text() + " " + n.Op + " " + n.Right.Text()
}
func (n *NumberMulExpr) Decimal() decimal.Decimal {
	if n.Op == "/" {
		r := n.Right.Decimal()
		if r.IsZero() {
			return decimal.Zero
		}
		return n.Left.Decimal().DivRound(r, 10)
	}
	return n.Left.Decimal().Mul(n.Right.Decimal())
}
func (n *NumberMulExpr) ChildrenFormatted() []Edge {
	return []Edge{
		{Child: n.Left},
		{Child: NewToken(TokOperator, n.Op)},
		{Child: n.Right},
	}
}
