// Package loader discovers the set of files that make up a Beancount
// ledger by following include directives from a root file.
//
// Unlike a full ledger loader, it does not merge included files into one
// tree: each discovered file is formatted independently (formatting is a
// per-file, structure-preserving operation, not a semantic merge), so the
// loader's job ends at producing an ordered, deduplicated file list.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/beanfmt/beanfmt/ast"
	"github.com/beanfmt/beanfmt/parser"
	"github.com/beanfmt/beanfmt/telemetry"
	"golang.org/x/sync/errgroup"
)

// Loader discovers files reachable from a root file via include directives.
type Loader struct {
	// Recursive determines whether include directives are followed.
	// When false, Discover returns just the root file.
	Recursive bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithRecursive configures the loader to follow include directives.
func WithRecursive() Option {
	return func(l *Loader) {
		l.Recursive = true
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// File is one discovered source file: its resolved path, parsed tree, and
// raw bytes (kept around for error rendering).
type File struct {
	Path   string
	Source []byte
	Tree   *ast.File
}

// Load parses a single file from disk.
func (l *Loader) Load(ctx context.Context, filename string) (*File, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.parse %s", filepath.Base(filename)))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses file content already read into memory. filename is used
// for error reporting and, when Recursive is set, as the base path from
// which relative include paths are resolved.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*File, error) {
	tree, err := parser.ParseBytes(ctx, filename, data)
	if err != nil {
		return nil, parser.NewParseErrorWithSource(filename, err, data)
	}
	return &File{Path: filename, Source: data, Tree: tree}, nil
}

// Discover returns the root file plus, when Recursive is set, every file it
// transitively includes, in include order with duplicates removed. A file
// included from more than one place is loaded and returned only once, under
// whichever include site's concurrent load claims it first, so its position
// in the result can differ between runs.
func (l *Loader) Discover(ctx context.Context, filename string) ([]*File, error) {
	root, err := l.Load(ctx, filename)
	if err != nil {
		return nil, err
	}
	if !l.Recursive {
		return []*File{root}, nil
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	state := &discoverState{visited: map[string]bool{absPath: true}}
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.discover %s", filepath.Base(filename)))
	defer timer.End()

	rest, err := state.discoverIncludes(ctx, root, filepath.Dir(absPath), timer)
	if err != nil {
		return nil, err
	}
	return append([]*File{root}, rest...), nil
}

// discoverState tracks absolute paths already discovered, guarding against
// include cycles and duplicate includes during concurrent traversal.
type discoverState struct {
	mu      sync.Mutex
	visited map[string]bool
}

// discoverIncludes loads every file (transitively) included by file,
// preserving include order. Sibling includes are resolved concurrently;
// each one's own includes are then resolved recursively.
func (s *discoverState) discoverIncludes(ctx context.Context, file *File, baseDir string, parent telemetry.Timer) ([]*File, error) {
	includes := includePaths(file.Tree)
	if len(includes) == 0 {
		return nil, nil
	}

	results := make([][]*File, len(includes))
	g, gctx := errgroup.WithContext(ctx)

	for i, inc := range includes {
		i, inc := i, inc
		path := inc
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		g.Go(func() error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve absolute path for %s: %w", path, err)
			}

			s.mu.Lock()
			if s.visited[absPath] {
				s.mu.Unlock()
				return nil
			}
			s.visited[absPath] = true
			s.mu.Unlock()

			childTimer := parent.Child(fmt.Sprintf("loader.parse %s", filepath.Base(path)))

			included, err := s.loadWithTimer(gctx, path, childTimer)
			if err != nil {
				return fmt.Errorf("in file %s: %w", file.Path, err)
			}
			if included == nil {
				return nil
			}

			nested, err := s.discoverIncludes(gctx, included, filepath.Dir(absPath), childTimer)
			if err != nil {
				return err
			}
			results[i] = append([]*File{included}, nested...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*File
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (s *discoverState) loadWithTimer(ctx context.Context, path string, timer telemetry.Timer) (*File, error) {
	defer timer.End()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	tree, err := parser.ParseBytes(ctx, path, data)
	if err != nil {
		return nil, parser.NewParseErrorWithSource(path, err, data)
	}
	return &File{Path: path, Source: data, Tree: tree}, nil
}

// includePaths extracts include-directive filenames from file, in source order.
func includePaths(file *ast.File) []string {
	var out []string
	for _, it := range file.Items {
		if inc, ok := it.Undated.(*ast.Include); ok {
			out = append(out, inc.Filename)
		}
	}
	return out
}
