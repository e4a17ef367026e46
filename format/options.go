// Package format renders an ast.File back to canonical Beancount source
// text: dispatch over node variant, landmark-based column alignment, file
// paragraphing, and an optional stability-preserving sort.
package format

// ThousandsSeparator controls how a formatted number's thousands are punctuated.
type ThousandsSeparator int

const (
	// ThousandsSeparatorKeep leaves each number's thousands grouping exactly
	// as the author wrote it.
	ThousandsSeparatorKeep ThousandsSeparator = iota
	// ThousandsSeparatorAdd inserts a comma every three integer digits.
	ThousandsSeparatorAdd
	// ThousandsSeparatorRemove strips any comma grouping.
	ThousandsSeparatorRemove
)

// Options configures the formatter. The zero value is a reasonable default
// except for the column settings, which should be set from Default().
type Options struct {
	// Indent is the literal text written for one level of indentation
	// (postings, metadata).
	Indent string

	// CurrencyColumn is the 0-indexed column amounts' currencies should
	// align to, for postings and balance/price directives (and the first
	// constraint currency of an open). 0 disables alignment (emit a single
	// space before the amount).
	CurrencyColumn int

	// CostColumn is the 0-indexed column a posting's cost/price annotation
	// should align to. 0 disables alignment.
	CostColumn int

	// InlineCommentColumn is the 0-indexed column trailing inline comments
	// should align to. 0 disables alignment (emit two spaces before ';').
	InlineCommentColumn int

	ThousandsSeparator ThousandsSeparator

	// SpacesInBraces adds a space just inside "{ }" / "{{ }}" cost braces.
	SpacesInBraces bool

	// Sort applies the prudent stable sort (see sort.go) before rendering.
	Sort bool
}

// Default returns the formatter's out-of-the-box configuration, matching
// the reference beancount fmt tool's column choices.
func Default() Options {
	return Options{
		Indent:              "    ",
		CurrencyColumn:      80,
		CostColumn:          85,
		InlineCommentColumn: 0,
		ThousandsSeparator:  ThousandsSeparatorKeep,
		SpacesInBraces:      false,
		Sort:                false,
	}
}
