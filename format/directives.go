package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// Each directive formatter below follows the same three-phase shape the
// spec calls for: write the fields preceding the alignment landmark, pad
// to the configured column, then close the line and render metadata/an
// inline comment in the tail. Column tracking happens directly against
// buf rather than through a re-parse, per the simplification this package
// takes throughout (see alignment.go).

func renderCommodity(buf *strings.Builder, ctx Context, node ast.Node) {
	c := node.(*ast.Commodity)
	buf.WriteString(c.Date.String())
	buf.WriteString(" commodity ")
	buf.WriteString(c.Currency)
	finishDirectiveLine(buf, ctx, c.InlineComment, c.Metadata)
}

func renderOpen(buf *strings.Builder, ctx Context, node ast.Node) {
	o := node.(*ast.Open)
	buf.WriteString(o.Date.String())
	buf.WriteString(" open ")
	buf.WriteString(string(o.Account))

	if len(o.ConstraintCurrencies) > 0 {
		padToColumn(buf, ctx.Options.CurrencyColumn)
		for i, cur := range o.ConstraintCurrencies {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(cur)
		}
	}

	if o.BookingMethod != "" {
		buf.WriteByte(' ')
		buf.WriteString(quoteString(o.BookingMethod))
	}

	finishDirectiveLine(buf, ctx, o.InlineComment, o.Metadata)
}

func renderClose(buf *strings.Builder, ctx Context, node ast.Node) {
	c := node.(*ast.Close)
	buf.WriteString(c.Date.String())
	buf.WriteString(" close ")
	buf.WriteString(string(c.Account))
	finishDirectiveLine(buf, ctx, c.InlineComment, c.Metadata)
}

func renderBalance(buf *strings.Builder, ctx Context, node ast.Node) {
	b := node.(*ast.Balance)
	buf.WriteString(b.Date.String())
	buf.WriteString(" balance ")
	buf.WriteString(string(b.Account))

	if b.Amount != nil {
		writeAmountAligned(buf, ctx, b.Amount)
	}

	finishDirectiveLineColumn(buf, ctx, b.InlineComment, b.Metadata)
}

func renderPad(buf *strings.Builder, ctx Context, node ast.Node) {
	p := node.(*ast.Pad)
	buf.WriteString(p.Date.String())
	buf.WriteString(" pad ")
	buf.WriteString(string(p.Account))
	buf.WriteByte(' ')
	buf.WriteString(string(p.AccountPad))
	finishDirectiveLine(buf, ctx, p.InlineComment, p.Metadata)
}

func renderNote(buf *strings.Builder, ctx Context, node ast.Node) {
	n := node.(*ast.Note)
	buf.WriteString(n.Date.String())
	buf.WriteString(" note ")
	buf.WriteString(string(n.Account))
	buf.WriteByte(' ')
	buf.WriteString(quoteString(n.Description.Value))
	finishDirectiveLine(buf, ctx, n.InlineComment, n.Metadata)
}

func renderDocument(buf *strings.Builder, ctx Context, node ast.Node) {
	d := node.(*ast.Document)
	buf.WriteString(d.Date.String())
	buf.WriteString(" document ")
	buf.WriteString(string(d.Account))
	buf.WriteByte(' ')
	buf.WriteString(quoteString(d.PathToDocument.Value))
	finishDirectiveLine(buf, ctx, d.InlineComment, d.Metadata)
}

func renderPrice(buf *strings.Builder, ctx Context, node ast.Node) {
	p := node.(*ast.Price)
	buf.WriteString(p.Date.String())
	buf.WriteString(" price ")
	buf.WriteString(p.Commodity)

	if p.Amount != nil {
		writeAmountAligned(buf, ctx, p.Amount)
	}

	finishDirectiveLineColumn(buf, ctx, p.InlineComment, p.Metadata)
}

func renderEvent(buf *strings.Builder, ctx Context, node ast.Node) {
	e := node.(*ast.Event)
	buf.WriteString(e.Date.String())
	buf.WriteString(" event ")
	buf.WriteString(quoteString(e.Name.Value))
	buf.WriteByte(' ')
	buf.WriteString(quoteString(e.Value.Value))
	finishDirectiveLine(buf, ctx, e.InlineComment, e.Metadata)
}

func renderQuery(buf *strings.Builder, ctx Context, node ast.Node) {
	q := node.(*ast.Query)
	buf.WriteString(q.Date.String())
	buf.WriteString(" query ")
	buf.WriteString(quoteString(q.QueryName.Value))
	buf.WriteByte(' ')
	buf.WriteString(quoteString(q.QueryText.Value))
	finishDirectiveLine(buf, ctx, q.InlineComment, q.Metadata)
}

func renderCustom(buf *strings.Builder, ctx Context, node ast.Node) {
	c := node.(*ast.Custom)
	buf.WriteString(c.Date.String())
	buf.WriteString(" custom ")
	buf.WriteString(quoteString(c.Type.Value))

	for _, v := range c.Values {
		buf.WriteByte(' ')
		switch {
		case v.String != nil:
			buf.WriteString(quoteString(*v.String))
		case v.Boolean != nil:
			if *v.Boolean {
				buf.WriteString("TRUE")
			} else {
				buf.WriteString("FALSE")
			}
		case v.Amount != nil:
			renderAmountValue(buf, ctx, v.Amount)
		case v.Number != nil:
			buf.WriteString(formatNumberText(v.Number.Text(), ctx.Options.ThousandsSeparator))
		}
	}

	finishDirectiveLine(buf, ctx, c.InlineComment, c.Metadata)
}

// writeAmountAligned pads to CurrencyColumn (falling back to a single
// space if the column is disabled or already passed) and writes the
// number + currency.
func writeAmountAligned(buf *strings.Builder, ctx Context, a *ast.Amount) {
	text := formatNumberText(a.Number.Text(), ctx.Options.ThousandsSeparator)
	target := ctx.Options.CurrencyColumn - runeLen(text) - 1
	padToColumn(buf, target)
	buf.WriteString(text)
	buf.WriteByte(' ')
	buf.WriteString(a.Currency)
}

// finishDirectiveLine closes a directive line and renders the tail: the
// inline comment (aligned to InlineCommentColumn when that is set, otherwise
// after two spaces), the newline, then metadata.
func finishDirectiveLine(buf *strings.Builder, ctx Context, comment *ast.Comment, metadata []*ast.MetaItem) {
	writeInlineCommentTail(buf, ctx, comment)
	buf.WriteByte('\n')
	renderMetadataList(buf, ctx, metadata)
}

// finishDirectiveLineColumn is used by balance, price and transaction; its
// output is the same as finishDirectiveLine's.
func finishDirectiveLineColumn(buf *strings.Builder, ctx Context, comment *ast.Comment, metadata []*ast.MetaItem) {
	if comment != nil && ctx.Options.InlineCommentColumn > 0 {
		padToColumn(buf, ctx.Options.InlineCommentColumn)
		renderInlineComment(buf, comment)
	} else {
		writeInlineCommentTail(buf, ctx, comment)
	}
	buf.WriteByte('\n')
	renderMetadataList(buf, ctx, metadata)
}

func writeInlineCommentTail(buf *strings.Builder, ctx Context, comment *ast.Comment) {
	if comment == nil {
		return
	}
	if ctx.Options.InlineCommentColumn > 0 {
		padToColumn(buf, ctx.Options.InlineCommentColumn)
	} else {
		buf.WriteString("  ")
	}
	renderInlineComment(buf, comment)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
