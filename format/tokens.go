package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// renderToken writes tok's normalized text to buf for the given context.
// Indent tokens discard their original text entirely and emit the
// context's current indent unit; everything else re-emits its semantic
// value with default surrounding whitespace.
func renderToken(buf *strings.Builder, ctx Context, tok *ast.Token) {
	switch tok.TKind {
	case ast.TokIndent:
		buf.WriteString(ctx.IndentPrefix())
	case ast.TokEol:
		buf.WriteByte('\n')
	case ast.TokNumber:
		buf.WriteString(formatNumberText(tok.Text, ctx.Options.ThousandsSeparator))
	case ast.TokString:
		buf.WriteString(quoteString(tok.Text))
	case ast.TokTag:
		buf.WriteByte('#')
		buf.WriteString(tok.Text)
	case ast.TokLink:
		buf.WriteByte('^')
		buf.WriteString(tok.Text)
	case ast.TokMetaKey:
		buf.WriteString(tok.Text)
		buf.WriteByte(':')
	default:
		buf.WriteString(tok.Text)
	}
}

// formatNumberText applies the thousands-separator policy to a decimal
// literal's raw text, preserving its fractional part and sign exactly.
// Text that is not a plain decimal literal (an arithmetic expression) is
// returned unchanged.
func formatNumberText(raw string, sep ThousandsSeparator) string {
	if sep == ThousandsSeparatorKeep {
		return raw
	}

	sign := ""
	body := raw
	if len(body) > 0 && (body[0] == '-' || body[0] == '+') {
		sign, body = body[:1], body[1:]
	}
	for _, r := range body {
		if (r < '0' || r > '9') && r != ',' && r != '.' {
			return raw
		}
	}

	intPart, fracPart := body, ""
	if i := strings.IndexByte(body, '.'); i >= 0 {
		intPart, fracPart = body[:i], body[i+1:]
	}
	intPart = strings.ReplaceAll(intPart, ",", "")

	if sep == ThousandsSeparatorAdd {
		intPart = groupThousands(intPart)
	}

	var out strings.Builder
	out.WriteString(sign)
	out.WriteString(intPart)
	if fracPart != "" {
		out.WriteByte('.')
		out.WriteString(fracPart)
	}
	return out.String()
}

// groupThousands inserts a comma every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	lead := n % 3
	var out strings.Builder
	out.Grow(n + n/3)
	if lead > 0 {
		out.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(digits[i : i+3])
	}
	return out.String()
}

// renderInlineComment normalizes a trailing comment to "; body", with a
// special case for the ";;narration[;comment]" shorthand some ledgers use
// to tuck an extra narration remark onto a posting or directive.
func renderInlineComment(buf *strings.Builder, c *ast.Comment) {
	if narration, rest, ok := splitDoubleSemicolon(c.Body); ok {
		buf.WriteString(";;")
		if narration != "" {
			buf.WriteByte(' ')
			buf.WriteString(narration)
		}
		if rest != nil {
			buf.WriteString(" ;")
			if *rest != "" {
				buf.WriteByte(' ')
				buf.WriteString(*rest)
			}
		}
		return
	}
	buf.WriteString("; ")
	buf.WriteString(strings.TrimSpace(c.Body))
}

// splitDoubleSemicolon recognizes the ";;narration;comment" shorthand in a
// comment body that already had its single leading ';' stripped by the
// parser, i.e. the raw body looks like ";narration;comment".
func splitDoubleSemicolon(body string) (narration string, comment *string, ok bool) {
	if len(body) == 0 || body[0] != ';' {
		return "", nil, false
	}
	rest := body[1:]
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		narration = strings.TrimSpace(rest[:i])
		c := strings.TrimSpace(rest[i+1:])
		return narration, &c, true
	}
	return strings.TrimSpace(rest), nil, true
}
