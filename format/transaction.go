package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

func renderTransaction(buf *strings.Builder, ctx Context, node ast.Node) {
	t := node.(*ast.Transaction)

	buf.WriteString(t.Date.String())
	buf.WriteByte(' ')
	buf.WriteString(t.Flag)

	if !t.Payee.IsEmpty() {
		buf.WriteByte(' ')
		buf.WriteString(quoteString(t.Payee.Value))
	}

	if !t.Narration.IsEmpty() {
		buf.WriteByte(' ')
		buf.WriteString(quoteString(t.Narration.Value))
	}

	for _, link := range t.Links {
		buf.WriteString(" ^")
		buf.WriteString(string(link))
	}

	for _, tag := range t.Tags {
		buf.WriteString(" #")
		buf.WriteString(string(tag))
	}

	finishDirectiveLineColumn(buf, ctx, t.InlineComment, t.Metadata)

	for _, p := range t.Postings {
		render(buf, ctx, p)
	}
}

func renderPosting(buf *strings.Builder, ctx Context, node ast.Node) {
	p := node.(*ast.Posting)
	inner := ctx.Indented()

	buf.WriteString(inner.IndentPrefix())

	if p.Flag != "" {
		buf.WriteString(p.Flag)
		buf.WriteByte(' ')
	}

	buf.WriteString(string(p.Account))

	if p.Amount != nil {
		text := formatNumberText(p.Amount.Number.Text(), ctx.Options.ThousandsSeparator)
		target := ctx.Options.CurrencyColumn - runeLen(text) - 1
		if p.Amount.Currency == "" {
			target = ctx.Options.CurrencyColumn - 1 - runeLen(text)
		}
		padToColumn(buf, target)
		buf.WriteString(text)
		if p.Amount.Currency != "" {
			buf.WriteByte(' ')
			buf.WriteString(p.Amount.Currency)
		}

		if p.Cost != nil || p.Price != nil {
			padToColumn(buf, ctx.Options.CostColumn)
		}
		if p.Cost != nil {
			render(buf, ctx, p.Cost)
		}
		if p.Price != nil {
			if p.Cost != nil {
				buf.WriteByte(' ')
			}
			marker := "@"
			if p.PriceTotal {
				marker = "@@"
			}
			buf.WriteString(marker)
			buf.WriteByte(' ')
			renderAmountValue(buf, ctx, p.Price)
		}
	}

	for _, m := range p.Metadata {
		if m.Inline {
			buf.WriteString("  ")
			buf.WriteString(m.Key)
			buf.WriteString(": ")
			renderMetadataValue(buf, ctx, m.Value)
		}
	}

	writeInlineCommentTail(buf, ctx, p.InlineComment)
	buf.WriteByte('\n')

	for _, m := range p.Metadata {
		if !m.Inline {
			render(buf, inner, m)
		}
	}
}
