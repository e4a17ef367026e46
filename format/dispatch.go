package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// handlerFunc renders node into buf under ctx. Handlers are responsible
// for emitting their own trailing newline where the grammar calls for one.
type handlerFunc func(buf *strings.Builder, ctx Context, node ast.Node)

// registry maps a node's Kind to a specific handler. Kinds absent from the
// registry fall back to the two defaults in render: a token leaf emits
// itself verbatim, a tree without a specific handler recurses over its
// formatted children. The registry is built once at package init and is
// never mutated afterwards, so render needs no locking.
var registry = map[ast.Kind]handlerFunc{
	ast.KindCommodity:   renderCommodity,
	ast.KindOpen:        renderOpen,
	ast.KindClose:       renderClose,
	ast.KindBalance:     renderBalance,
	ast.KindPad:         renderPad,
	ast.KindNote:        renderNote,
	ast.KindDocument:    renderDocument,
	ast.KindPrice:       renderPrice,
	ast.KindEvent:       renderEvent,
	ast.KindQuery:       renderQuery,
	ast.KindCustom:      renderCustom,
	ast.KindTransaction: renderTransaction,
	ast.KindPosting:     renderPosting,
	ast.KindCost:        renderCost,
	ast.KindMetaItem:    renderMetaItem,
	ast.KindBlockComment: func(buf *strings.Builder, ctx Context, node ast.Node) {
		renderComment(buf, ctx, node.(*ast.Comment), false)
	},
	ast.KindInlineComment: func(buf *strings.Builder, ctx Context, node ast.Node) {
		renderComment(buf, ctx, node.(*ast.Comment), true)
	},
}

// render dispatches node to its specific handler, or to the generic
// fallback if none is registered: a token emits its normalized text, a
// tree recurses over children_formatted with indentation propagated.
func render(buf *strings.Builder, ctx Context, node ast.Node) {
	if node == nil {
		return
	}
	if h, ok := registry[node.Kind()]; ok {
		h(buf, ctx, node)
		return
	}
	if tok, ok := node.(*ast.Token); ok {
		writeTokenSeparator(buf, tok)
		renderToken(buf, ctx, tok)
		return
	}
	if ne, ok := node.(ast.NumberExpr); ok {
		writeExprSeparator(buf)
		renderNumberExpr(buf, ctx, ne)
		return
	}
	if tree, ok := node.(ast.TreeNode); ok {
		renderChildren(buf, ctx, tree)
		return
	}
}

// renderNumberExpr emits a number expression's structural text. Only a
// bare Number leaf is subject to the thousands-separator transform;
// compound arithmetic expressions ("(10 + 20)") are preserved exactly as
// the author wrote them.
func renderNumberExpr(buf *strings.Builder, ctx Context, ne ast.NumberExpr) {
	if n, ok := ne.(*ast.Number); ok {
		buf.WriteString(formatNumberText(n.Raw, ctx.Options.ThousandsSeparator))
		return
	}
	buf.WriteString(ne.Text())
}

func writeExprSeparator(buf *strings.Builder) {
	s := buf.String()
	if s == "" {
		return
	}
	last := s[len(s)-1]
	if last == '\n' || last == ' ' {
		return
	}
	buf.WriteByte(' ')
}

// renderChildren is the generic tree fallback: walk children_formatted in
// order, deriving an indented context for edges marked Indented.
func renderChildren(buf *strings.Builder, ctx Context, tree ast.TreeNode) {
	for _, edge := range tree.ChildrenFormatted() {
		childCtx := ctx
		if edge.Indented {
			childCtx = ctx.Indented()
		}
		render(buf, childCtx, edge.Child)
	}
}

// writeTokenSeparator inserts the default single space between sibling
// tokens rendered through the generic fallback, unless buf is at the
// start of a line or the token is a line terminator. This is what lets
// undated clauses (option/include/plugin/pushtag/...) fall all the way
// through to bare token re-emission without hand-written spacing.
func writeTokenSeparator(buf *strings.Builder, tok *ast.Token) {
	if tok.TKind == ast.TokEol {
		return
	}
	s := buf.String()
	if s == "" {
		return
	}
	last := s[len(s)-1]
	if last == '\n' || last == ' ' {
		return
	}
	buf.WriteByte(' ')
}

func renderMetaItem(buf *strings.Builder, ctx Context, node ast.Node) {
	m := node.(*ast.MetaItem)
	buf.WriteString(ctx.IndentPrefix())
	buf.WriteString(m.Key)
	buf.WriteString(": ")
	renderMetadataValue(buf, ctx, m.Value)
	if m.Comment != nil {
		buf.WriteString("  ")
		renderInlineComment(buf, m.Comment)
	}
	buf.WriteByte('\n')
}

func renderMetadataValue(buf *strings.Builder, ctx Context, v *ast.MetadataValue) {
	if v == nil {
		return
	}
	switch {
	case v.StringValue != nil:
		buf.WriteString(quoteString(v.StringValue.Value))
	case v.Date != nil:
		buf.WriteString(v.Date.String())
	case v.Account != nil:
		buf.WriteString(string(*v.Account))
	case v.Currency != nil:
		buf.WriteString(*v.Currency)
	case v.Tag != nil:
		buf.WriteByte('#')
		buf.WriteString(string(*v.Tag))
	case v.Link != nil:
		buf.WriteByte('^')
		buf.WriteString(string(*v.Link))
	case v.Number != nil:
		buf.WriteString(formatNumberText(v.Number.Text(), ctx.Options.ThousandsSeparator))
	case v.Amount != nil:
		renderAmountValue(buf, ctx, v.Amount)
	case v.Boolean != nil:
		if *v.Boolean {
			buf.WriteString("TRUE")
		} else {
			buf.WriteString("FALSE")
		}
	}
}

func renderAmountValue(buf *strings.Builder, ctx Context, a *ast.Amount) {
	buf.WriteString(formatNumberText(a.Number.Text(), ctx.Options.ThousandsSeparator))
	buf.WriteByte(' ')
	buf.WriteString(a.Currency)
}

func renderComment(buf *strings.Builder, ctx Context, c *ast.Comment, inline bool) {
	if !inline {
		buf.WriteString(ctx.IndentPrefix())
	}
	renderInlineComment(buf, c)
	buf.WriteByte('\n')
}

func renderMetadataList(buf *strings.Builder, ctx Context, items []*ast.MetaItem) {
	inner := ctx.Indented()
	for _, m := range items {
		render(buf, inner, m)
	}
}
