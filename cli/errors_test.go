package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/beanfmt/beanfmt/ast"
	"github.com/beanfmt/beanfmt/parser"
)

func TestErrorRenderer_RenderParseErrorWithSourceContext(t *testing.T) {
	sourceContent := `2024-01-15 * "Cafe purchase" "Lunch at cafe"
  Expenses:Food:Cafe                     -25.00 USD
  Assets:Checking

2024-01-16 * "Another transaction" "Test transaction"
  Expenses:Food:Restaurant                -30.00
  Assets:Checking`

	parseErr := &parser.ParseError{
		Pos: ast.Position{
			Filename: "test.beancount",
			Line:     6,
			Column:   49,
		},
		Message: "expected currency",
		SourceRange: parser.SourceRange{
			StartOffset: 0,
			EndOffset:   len(sourceContent),
			Source:      []byte(sourceContent),
		},
	}

	renderer := NewErrorRenderer(nil)
	output := renderer.Render(parseErr)

	assert.Contains(t, output, "expected currency")
	assert.Contains(t, output, "test.beancount:6:49")
	assert.Contains(t, output, "Expenses:Food:Restaurant")
	assert.Contains(t, output, "^")

	lines := strings.Split(output, "\n")
	foundIndentedLine := false
	for _, line := range lines {
		if strings.HasPrefix(line, "   ") && strings.Contains(line, "Expenses:Food:Restaurant") {
			foundIndentedLine = true
			break
		}
	}
	assert.True(t, foundIndentedLine, "Expected indented source lines")
}

func TestErrorRenderer_RenderParseErrorWithoutSourceContext(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos: ast.Position{
			Filename: "test.beancount",
			Line:     6,
			Column:   49,
		},
		Message: "expected currency",
	}

	renderer := NewErrorRenderer(nil)
	output := renderer.Render(parseErr)

	expected := "test.beancount:6:49: expected currency"
	assert.Equal(t, expected, output)
}

func TestErrorRenderer_RenderWithSourceContext(t *testing.T) {
	sourceContent := `2024-01-15 * "Test" "Description"
  Expenses:Food                     -10.00 USD
  Assets:Cash`

	pos := ast.Position{
		Filename: "test.beancount",
		Line:     2,
		Column:   35,
	}

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.renderWithSourceContext(pos, "test error message", []byte(sourceContent))

	assert.Contains(t, output, "test error message")
	assert.Contains(t, output, "Expenses:Food")
	assert.Contains(t, output, "^")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.True(t, len(lines) >= 5, "Expected at least 5 lines in output")
}

func TestErrorRenderer_RenderWithSourceContext_BoundsChecking(t *testing.T) {
	sourceContent := `2024-01-15 * "Test" "Description"
  Expenses:Food                     -10.00 USD`

	pos := ast.Position{
		Filename: "test.beancount",
		Line:     1,
		Column:   10,
	}

	renderer := NewErrorRenderer([]byte(sourceContent))
	output := renderer.renderWithSourceContext(pos, "error", []byte(sourceContent))

	assert.Contains(t, output, "2024-01-15")
}
