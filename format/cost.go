package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// renderCost emits a posting's cost annotation: "{...}" for a per-unit
// cost, "{{...}}" for a total cost. When SpacesInBraces is enabled and the
// braces are non-empty, a single space is inserted just inside them.
func renderCost(buf *strings.Builder, ctx Context, node ast.Node) {
	c := node.(*ast.Cost)

	open, close := "{", "}"
	if c.IsTotal {
		open, close = "{{", "}}"
	}

	buf.WriteString(open)

	switch {
	case c.IsMerge:
		buf.WriteByte('*')
	case c.IsEmpty():
		// nothing between the braces
	default:
		if ctx.Options.SpacesInBraces {
			buf.WriteByte(' ')
		}
		writeCostBody(buf, ctx, c)
		if ctx.Options.SpacesInBraces {
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(close)
}

func writeCostBody(buf *strings.Builder, ctx Context, c *ast.Cost) {
	wrote := false
	if c.Amount != nil {
		renderAmountValue(buf, ctx, c.Amount)
		wrote = true
	}
	if c.Date != nil {
		if wrote {
			buf.WriteString(", ")
		}
		buf.WriteString(c.Date.String())
		wrote = true
	}
	if c.Label != "" {
		if wrote {
			buf.WriteString(", ")
		}
		buf.WriteString(quoteString(c.Label))
	}
}
