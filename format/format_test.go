package format

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanfmt/beanfmt/ast"
	"github.com/beanfmt/beanfmt/parser"
)

func mustParse(t *testing.T, source string) *ast.File {
	t.Helper()
	file, err := parser.ParseString(context.Background(), "test.beancount", source)
	assert.NoError(t, err)
	return file
}

func mustFormat(t *testing.T, source string, opts Options) string {
	t.Helper()
	file := mustParse(t, source)
	out, err := String(context.Background(), file, opts)
	assert.NoError(t, err)
	return out
}

// Concrete end-to-end scenarios, spec.md §8.

func TestBalanceAlignment(t *testing.T) {
	source := "2000-01-01      balance\tAssets:Foo  1.23   USD\n"
	opts := Default()
	out := mustFormat(t, source, opts)
	assert.Equal(t, "2000-01-01 balance Assets:Foo                                              1.23 USD\n", out)
}

func TestOpenCurrencyAlignment(t *testing.T) {
	source := "2000-01-01 open Assets:Foo   USD,GBP,  EUR\n"
	opts := Default()
	out := mustFormat(t, source, opts)
	assert.Equal(t, "2000-01-01 open Assets:Foo                                                      USD, GBP, EUR\n", out)
}

func TestPostingCostAndPriceAlignment(t *testing.T) {
	source := `2021-01-01 * "Test"
    Assets:Foo  1.00 GBP   {1.23 USD}   @ 1.23 USD
    Equity:Open
`
	opts := Default()
	out := mustFormat(t, source, opts)
	assert.Contains(t, out, "    Assets:Foo                                                             1.00 GBP  {1.23 USD} @ 1.23 USD\n")
}

func TestFileParagraphing(t *testing.T) {
	source := "include \"foo.bean\"\n\n\n\n\n\ninclude \"bar.bean\"\n\n\n\n\n"
	out := mustFormat(t, source, Default())
	assert.Equal(t, "include \"foo.bean\"\n\ninclude \"bar.bean\"\n", out)
}

func TestThousandsSeparatorAdd(t *testing.T) {
	got := formatNumberText("1234567890.0987654321", ThousandsSeparatorAdd)
	assert.Equal(t, "1,234,567,890.0987654321", got)
}

func TestThousandsSeparatorRemove(t *testing.T) {
	got := formatNumberText("1,234,567.89", ThousandsSeparatorRemove)
	assert.Equal(t, "1234567.89", got)
}

func TestThousandsSeparatorKeep(t *testing.T) {
	got := formatNumberText("1,234,567.89", ThousandsSeparatorKeep)
	assert.Equal(t, "1,234,567.89", got)
}

func TestNarrationInlineCommentShorthand(t *testing.T) {
	// The parser strips exactly one leading ';'; the remaining body still
	// starts with ';' for the ";;narration;comment" shorthand.
	c := &ast.Comment{Body: ";foo;bar;baz", Type: ast.InlineCommentType}
	var sb strings.Builder
	renderInlineComment(&sb, c)
	assert.Equal(t, ";; foo ; bar;baz", sb.String())
}

func TestNarrationInlineCommentPlain(t *testing.T) {
	c := &ast.Comment{Body: "  plain comment  ", Type: ast.InlineCommentType}
	var sb strings.Builder
	renderInlineComment(&sb, c)
	assert.Equal(t, "; plain comment", sb.String())
}

// Universal properties, spec.md §8.

func TestIdempotence(t *testing.T) {
	source := `option "title" "Test"

2000-01-01 open Assets:Checking USD
2000-01-01 open Expenses:Food USD

2000-01-02 * "Cafe" "Lunch"
  Expenses:Food  10.00 USD
  Assets:Checking
`
	opts := Default()
	first := mustFormat(t, source, opts)
	second := mustFormat(t, first, opts)
	assert.Equal(t, first, second)
}

func TestEmptyFileYieldsEmptyOutput(t *testing.T) {
	out := mustFormat(t, "", Default())
	assert.Equal(t, "", out)
}

func TestNonEmptyOutputEndsWithExactlyOneNewline(t *testing.T) {
	out := mustFormat(t, "2000-01-01 open Assets:Foo\n", Default())
	assert.True(t, len(out) > 0)
	assert.Equal(t, byte('\n'), out[len(out)-1])
	assert.True(t, len(out) < 2 || out[len(out)-2] != '\n')
}

func TestAlignmentMonotonicity(t *testing.T) {
	source := "2000-01-01 balance Assets:Foo  1.23 USD\n"
	low := mustFormat(t, source, Options{Indent: "    ", CurrencyColumn: 40, ThousandsSeparator: ThousandsSeparatorKeep})
	high := mustFormat(t, source, Options{Indent: "    ", CurrencyColumn: 80, ThousandsSeparator: ThousandsSeparatorKeep})

	colOf := func(s string) int {
		i := indexOf(s, "1.23")
		return i
	}
	assert.True(t, colOf(high) > colOf(low))
}

// Prudent sort: block-granularity properties.

func TestSortStabilityOfSortedInput(t *testing.T) {
	blocks := []*renderBlock{
		balanceBlock(t, "2000-01-01"),
		balanceBlock(t, "2000-01-02"),
		balanceBlock(t, "2000-01-03"),
	}
	out := sortBlockList(blocks)
	assert.Equal(t, len(blocks), len(out))
	for i := range blocks {
		assert.True(t, blocks[i] == out[i])
	}
}

func TestSortReordersOutOfOrderBlocks(t *testing.T) {
	blocks := []*renderBlock{
		balanceBlock(t, "2000-01-03"),
		balanceBlock(t, "2000-01-01"),
		balanceBlock(t, "2000-01-02"),
	}
	out := sortBlockList(blocks)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, "2000-01-01", blockDate(out[0]))
	assert.Equal(t, "2000-01-02", blockDate(out[1]))
	assert.Equal(t, "2000-01-03", blockDate(out[2]))
}

func TestSortDoesNotCrossCompartmentBarrier(t *testing.T) {
	splitter := &renderBlock{items: []*ast.Item{
		{Undated: &ast.Pushtag{Pos: ast.Position{}, Tag: ast.Tag("trip")}},
	}}
	blocks := []*renderBlock{
		balanceBlock(t, "2000-02-02"),
		balanceBlock(t, "2000-02-01"),
		splitter,
		balanceBlock(t, "2000-01-02"),
		balanceBlock(t, "2000-01-01"),
	}
	out := sortBlockList(blocks)
	assert.Equal(t, 5, len(out))
	assert.Equal(t, "2000-02-01", blockDate(out[0]))
	assert.Equal(t, "2000-02-02", blockDate(out[1]))
	assert.True(t, out[2] == splitter)
	assert.Equal(t, "2000-01-01", blockDate(out[3]))
	assert.Equal(t, "2000-01-02", blockDate(out[4]))
}

// Entry-level reordering within a single unblanked block, spec.md §4.8
// step 5 and its worked example ("Prudent sort reorder one").

func TestSortReordersEntriesWithinSingleUnblankedBlock(t *testing.T) {
	// Seven dated entries with no blank lines between them collapse into
	// a single render block (format/file.go's category/alwaysIsolated
	// rules); the entries within it must still be individually reordered,
	// not left untouched just because the partitioner merged them.
	block := &renderBlock{items: []*ast.Item{
		balanceEntry(t, "2000-01-01", ""),
		balanceEntry(t, "2000-01-02", "01:00"),
		balanceEntry(t, "2000-01-02", ""),
		balanceEntry(t, "2000-01-02", "02:00"),
		balanceEntry(t, "2000-01-02", ""),
		balanceEntry(t, "2000-01-02", "01:01"),
		balanceEntry(t, "2000-01-03", ""),
	}}
	out := sortBlockList([]*renderBlock{block})
	assert.Equal(t, 1, len(out))
	assert.Equal(t, []string{
		"2000-01-01",
		"2000-01-02 01:00",
		"2000-01-02",
		"2000-01-02 01:01",
		"2000-01-02 02:00",
		"2000-01-02",
		"2000-01-03",
	}, entryLabels(out[0]))
}

func TestSortReordersWithOptionalTimeTiesOnSameDate(t *testing.T) {
	block := &renderBlock{items: []*ast.Item{
		balanceEntry(t, "2000-01-01", ""),
		balanceEntry(t, "2000-01-01", "02:00"),
		balanceEntry(t, "2000-01-01", ""),
		balanceEntry(t, "2000-01-01", "08:00"),
		balanceEntry(t, "2000-01-01", ""),
		balanceEntry(t, "2000-01-01", "04:00"),
		balanceEntry(t, "2000-01-01", ""),
	}}
	out := sortBlockList([]*renderBlock{block})
	assert.Equal(t, 1, len(out))
	assert.Equal(t, []string{
		"2000-01-01",
		"2000-01-01 02:00",
		"2000-01-01",
		"2000-01-01 04:00",
		"2000-01-01 08:00",
		"2000-01-01",
		"2000-01-01",
	}, entryLabels(out[0]))
}

// -- test helpers --

func balanceBlock(t *testing.T, date string) *renderBlock {
	t.Helper()
	d, err := ast.NewDate(date)
	assert.NoError(t, err)
	return &renderBlock{items: []*ast.Item{
		{Directive: &ast.Balance{Date: d, Account: "Assets:Foo"}},
	}}
}

// balanceEntry builds a single dated Balance item, optionally carrying a
// "time" metadata tie-breaker in "HH:MM" form.
func balanceEntry(t *testing.T, date, clock string) *ast.Item {
	t.Helper()
	d, err := ast.NewDate(date)
	assert.NoError(t, err)
	bal := &ast.Balance{Date: d, Account: "Assets:Foo"}
	if clock != "" {
		rs := ast.NewRawString(clock)
		bal.AddMetadata(&ast.MetaItem{Key: "time", Value: &ast.MetadataValue{StringValue: &rs}})
	}
	return &ast.Item{Directive: bal}
}

// entryLabels renders a block's items back to "date[ time]" strings for
// assertions, mirroring the spec's own test-vector notation.
func entryLabels(b *renderBlock) []string {
	labels := make([]string, len(b.items))
	for i, it := range b.items {
		label := it.Directive.GetDate().String()
		for _, m := range it.Directive.GetMetadata() {
			if m.Key == "time" && m.Value != nil && m.Value.StringValue != nil {
				label += " " + m.Value.StringValue.Value
			}
		}
		labels[i] = label
	}
	return labels
}

func blockDate(b *renderBlock) string {
	if len(b.items) == 0 || b.items[0].Directive == nil {
		return ""
	}
	return b.items[0].Directive.GetDate().String()
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
