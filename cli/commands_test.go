package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/beanfmt/beanfmt/format"
	"github.com/beanfmt/beanfmt/parser"
)

func TestFormatOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cmd := &FormatCmd{
			Indent:             "    ",
			CurrencyColumn:     80,
			CostColumn:         85,
			ThousandsSeparator: "keep",
		}
		opts, err := cmd.options()
		assert.NoError(t, err)
		assert.Equal(t, 80, opts.CurrencyColumn)
		assert.Equal(t, 85, opts.CostColumn)
		assert.Equal(t, format.ThousandsSeparatorKeep, opts.ThousandsSeparator)
	})

	t.Run("rejects unknown thousands separator", func(t *testing.T) {
		cmd := &FormatCmd{ThousandsSeparator: "bogus"}
		_, err := cmd.options()
		assert.Error(t, err)
	})
}

func TestFormatCmdValidate(t *testing.T) {
	t.Run("rejects recursive stdin", func(t *testing.T) {
		cmd := &FormatCmd{File: FileOrStdin{Filename: "-"}, Recursive: true}
		assert.Error(t, cmd.validate())
	})

	t.Run("rejects inplace stdin", func(t *testing.T) {
		cmd := &FormatCmd{File: FileOrStdin{Filename: "-"}, OutputMode: OutputInplace}
		assert.Error(t, cmd.validate())
	})

	t.Run("rejects non-whitespace indent", func(t *testing.T) {
		cmd := &FormatCmd{Indent: "--"}
		assert.Error(t, cmd.validate())
	})

	t.Run("accepts ordinary file", func(t *testing.T) {
		cmd := &FormatCmd{File: FileOrStdin{Filename: "main.beancount"}, Indent: "  "}
		assert.NoError(t, cmd.validate())
	})
}

func TestFormatEndToEnd(t *testing.T) {
	source := `
option "title" "Test"

2021-01-01 open Assets:Checking

2021-01-02 * "Test transaction"
  Assets:Checking  -100.00 USD
  Expenses:Food  100.00 USD
`
	tree, err := parser.ParseBytes(context.Background(), "test.beancount", []byte(source))
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = format.Format(context.Background(), tree, format.Default(), &buf)
	assert.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `option "title" "Test"`)
	assert.Contains(t, output, "2021-01-01 open Assets:Checking")
	assert.Contains(t, output, "100.00 USD")
}

func TestUnifiedDiff(t *testing.T) {
	t.Run("no diff on identical content", func(t *testing.T) {
		assert.Equal(t, "", unifiedDiff("a.beancount", "same\n", "same\n"))
	})

	t.Run("diff on changed content", func(t *testing.T) {
		diff := unifiedDiff("a.beancount", "before\n", "after\n")
		assert.Contains(t, diff, "a.beancount")
		assert.Contains(t, diff, "before")
		assert.Contains(t, diff, "after")
	})
}
