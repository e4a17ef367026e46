package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/beanfmt/beanfmt/format"
	"github.com/beanfmt/beanfmt/loader"
	"github.com/beanfmt/beanfmt/telemetry"
)

// OutputMode controls where formatted output goes.
type OutputMode string

const (
	OutputStdout  OutputMode = "stdout"
	OutputDiff    OutputMode = "diff"
	OutputInplace OutputMode = "inplace"
)

// FormatCmd formats a beancount file (and, with --recursive, every file it
// includes) to align numbers, currencies and comments.
type FormatCmd struct {
	File FileOrStdin `help:"Beancount input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`

	Indent              string     `help:"Literal text used for one indentation level (spaces or tabs only)." default:"    "`
	CurrencyColumn      int        `help:"Column to align posting/balance/price currencies to (0 disables)." default:"80"`
	CostColumn          int        `help:"Column to align cost/price annotations to (0 disables)." default:"85"`
	InlineCommentColumn int        `help:"Column to align trailing inline comments to (0 disables)." default:"0"`
	OutputMode          OutputMode `help:"Where to send formatted output: stdout, diff, or inplace." enum:"stdout,diff,inplace" default:"stdout"`
	ThousandsSeparator  string     `help:"Thousands-separator policy for numbers: add, remove, or keep." enum:"add,remove,keep" default:"keep"`
	SpacesInBraces      bool       `help:"Add a space just inside cost '{ }' / '{{ }}' braces."`
	Sort                bool       `help:"Apply the prudent stable sort to top-level blocks."`
	Recursive           bool       `help:"Follow include directives relative to each file and format them too."`
}

func (cmd *FormatCmd) Run(kctx *kong.Context, globals *Globals) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.OutputMode == OutputInplace && cmd.Recursive && isTerminal() {
		ok, err := promptYesNo(kctx, "Format files in place? This overwrites them on disk.")
		if err != nil {
			return err
		}
		if !ok {
			printError(kctx.Stderr, "aborted")
			return NewCommandError(1)
		}
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(kctx.Stderr)
			collector.Report(kctx.Stderr)
		}()
	}

	opts, err := cmd.options()
	if err != nil {
		return err
	}

	ldr := loader.New()
	if cmd.Recursive {
		ldr = loader.New(loader.WithRecursive())
	}

	files, err := cmd.File.Discover(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(nil)
		_, _ = fmt.Fprint(kctx.Stderr, renderer.Render(err))
		_, _ = fmt.Fprintln(kctx.Stderr)
		printError(kctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	for _, f := range files {
		if err := cmd.emit(runCtx, kctx, f, opts); err != nil {
			return err
		}
	}

	return nil
}

func (cmd *FormatCmd) validate() error {
	if cmd.File.Filename == "-" || cmd.File.Filename == "" || cmd.File.Filename == "<stdin>" {
		if cmd.Recursive {
			return fmt.Errorf("--recursive is incompatible with stdin input")
		}
		if cmd.OutputMode == OutputInplace {
			return fmt.Errorf("--output-mode=inplace is incompatible with stdin input")
		}
	}
	for _, r := range cmd.Indent {
		if r != ' ' && r != '\t' {
			return fmt.Errorf("--indent must contain only spaces or tabs, got %q", cmd.Indent)
		}
	}
	return nil
}

func (cmd *FormatCmd) options() (format.Options, error) {
	opts := format.Default()
	opts.Indent = cmd.Indent
	opts.CurrencyColumn = cmd.CurrencyColumn
	opts.CostColumn = cmd.CostColumn
	opts.InlineCommentColumn = cmd.InlineCommentColumn
	opts.SpacesInBraces = cmd.SpacesInBraces
	opts.Sort = cmd.Sort

	switch cmd.ThousandsSeparator {
	case "add":
		opts.ThousandsSeparator = format.ThousandsSeparatorAdd
	case "remove":
		opts.ThousandsSeparator = format.ThousandsSeparatorRemove
	case "keep", "":
		opts.ThousandsSeparator = format.ThousandsSeparatorKeep
	default:
		return opts, fmt.Errorf("unknown --thousands-separator %q", cmd.ThousandsSeparator)
	}
	return opts, nil
}

func (cmd *FormatCmd) emit(ctx context.Context, kctx *kong.Context, f *loader.File, opts format.Options) error {
	out, err := format.String(ctx, f.Tree, opts)
	if err != nil {
		return err
	}

	switch cmd.OutputMode {
	case OutputInplace:
		info, err := os.Stat(f.Path)
		mode := os.FileMode(0644)
		if err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(f.Path, []byte(out), mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		printSuccess(kctx.Stdout, fmt.Sprintf("formatted %s", relDisplay(f.Path)))
	case OutputDiff:
		diff := unifiedDiff(f.Path, string(f.Source), out)
		if diff != "" {
			_, _ = fmt.Fprint(kctx.Stdout, diff)
		}
	default:
		_, _ = fmt.Fprint(kctx.Stdout, out)
	}
	return nil
}

// unifiedDiff renders a unified diff between before and after, with
// fromfile=path and tofile="path (formatted)".
func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	unified := gotextdiff.ToUnified(path, path+" (formatted)", before, edits)
	return fmt.Sprint(unified)
}

func relDisplay(path string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}
