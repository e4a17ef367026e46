// Package format renders a parsed Beancount file back to canonical source
// text: dispatch over node variant (dispatch.go), landmark-based column
// alignment (alignment.go, directives.go), file paragraphing (file.go),
// and an optional stability-preserving sort (sort.go).
package format

import (
	"context"
	"io"
	"strings"

	"github.com/beanfmt/beanfmt/ast"
	"github.com/beanfmt/beanfmt/telemetry"
)

// Format renders file to w under opts. The input tree is read-only: no
// part of it is mutated by this call.
func Format(ctx context.Context, file *ast.File, opts Options, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start("format.render")
	out := RenderFile(file, opts)
	timer.End()

	_, err := w.Write([]byte(out))
	return err
}

// String renders file to a string under opts; a convenience wrapper
// around Format for callers that don't need streaming output.
func String(ctx context.Context, file *ast.File, opts Options) (string, error) {
	var buf strings.Builder
	if err := Format(ctx, file, opts, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
