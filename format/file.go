package format

import (
	"strings"

	"github.com/beanfmt/beanfmt/ast"
)

// renderBlock is a maximal run of top-level items that render as one
// visual paragraph: no blank line is introduced between its members, but
// exactly one blank line separates it from its neighbors.
type renderBlock struct {
	items []*ast.Item
}

// category classifies an item for the block-boundary predicate.
func category(it *ast.Item) string {
	switch {
	case it.Undated != nil:
		switch it.Undated.Kind() {
		case ast.KindPushtag, ast.KindPoptag, ast.KindPushmeta, ast.KindPopmeta:
			return "push_pop"
		case ast.KindPlugin, ast.KindInclude, ast.KindOption:
			return "directive"
		}
		return "other"
	case it.Directive != nil:
		switch it.Directive.Kind() {
		case ast.KindOpen, ast.KindClose, ast.KindCommodity, ast.KindPad, ast.KindBalance:
			return "declaration"
		}
		return "other"
	default:
		return "other"
	}
}

// alwaysIsolated reports whether an item's kind is always surrounded by
// blank lines regardless of category, per the spec's block partitioner.
func alwaysIsolated(it *ast.Item) bool {
	if it.BlockComment != nil {
		return true
	}
	if it.Directive != nil && it.Directive.Kind() == ast.KindTransaction {
		return true
	}
	return false
}

// partitionBlocks groups a file's items into render blocks: a new block
// starts whenever a user blank line precedes the item, either neighbor is
// always-isolated, or the category changes.
func partitionBlocks(items []*ast.Item) []*renderBlock {
	var blocks []*renderBlock
	var current *renderBlock

	for i, it := range items {
		boundary := i == 0
		if i > 0 {
			prev := items[i-1]
			if it.BlanksBefore > 0 || alwaysIsolated(prev) || alwaysIsolated(it) || category(prev) != category(it) {
				boundary = true
			}
		}
		if boundary || current == nil {
			current = &renderBlock{}
			blocks = append(blocks, current)
		}
		current.items = append(current.items, it)
	}

	return blocks
}

// splitCompartments splits a block list at any block whose first item is
// a push/pop clause or a standalone block comment: those splitter blocks
// are emitted verbatim and never reordered by the sorter, and no sort may
// move a block across one.
func splitCompartments(blocks []*renderBlock) (compartments [][]*renderBlock, splitters []*renderBlock, layout []bool) {
	// layout[i] true means "this is a splitter", interleaved with the
	// compartments: splitters and compartments alternate in original order.
	var curCompartment []*renderBlock
	for _, b := range blocks {
		if isSplitter(b) {
			compartments = append(compartments, curCompartment)
			layout = append(layout, false)
			splitters = append(splitters, b)
			layout = append(layout, true)
			curCompartment = nil
			continue
		}
		curCompartment = append(curCompartment, b)
	}
	compartments = append(compartments, curCompartment)
	layout = append(layout, false)
	return compartments, splitters, layout
}

func isSplitter(b *renderBlock) bool {
	if len(b.items) == 0 {
		return false
	}
	first := b.items[0]
	if first.BlockComment != nil {
		return true
	}
	if first.Undated != nil {
		switch first.Undated.Kind() {
		case ast.KindPushtag, ast.KindPoptag, ast.KindPushmeta, ast.KindPopmeta:
			return true
		}
	}
	return false
}

// RenderFile renders an entire parsed file to canonical text.
func RenderFile(file *ast.File, opts Options) string {
	blocks := partitionBlocks(file.Items)

	if opts.Sort {
		blocks = sortBlockList(blocks)
	}

	var buf strings.Builder
	ctx := Context{Options: opts}

	for i, b := range blocks {
		if i > 0 {
			buf.WriteByte('\n')
		}
		renderBlockItems(&buf, ctx, b)
	}

	out := strings.Trim(buf.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func renderBlockItems(buf *strings.Builder, ctx Context, b *renderBlock) {
	for _, it := range b.items {
		render(buf, ctx, it.Node())
	}
}

// sortBlockList applies the prudent sort within each compartment, leaving
// splitter blocks (push/pop clauses, standalone comments) fixed in place.
func sortBlockList(blocks []*renderBlock) []*renderBlock {
	compartments, splitters, layout := splitCompartments(blocks)

	var out []*renderBlock
	ci, si := 0, 0
	baseIndex := 0
	for _, isSplitterSlot := range layout {
		if isSplitterSlot {
			out = append(out, splitters[si])
			baseIndex += len(splitters[si].items)
			si++
			continue
		}
		sorted := prudentSortBlocks(compartments[ci], baseIndex)
		out = append(out, sorted...)
		for _, b := range compartments[ci] {
			baseIndex += len(b.items)
		}
		ci++
	}
	return out
}
