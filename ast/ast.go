// Package ast declares the types used to represent syntax trees for Beancount files.
//
// These types represent the structure of Beancount directives, transactions, and related
// elements that make up a Beancount ledger file. The tree is produced by parsing a
// Beancount file with the parser package, and consumed read-only by the format package.
package ast

// Item is one top-level entry in a File: a directive, an undated clause
// (option/include/plugin/pushtag/poptag/pushmeta/popmeta), or a standalone
// block comment. Exactly one of Directive/Undated/BlockComment is non-nil.
// BlanksBefore records how many blank source lines preceded this item,
// which the file formatter's block partitioner uses to decide where a
// forced block boundary falls.
type Item struct {
	Pos          Position
	Directive    Directive
	Undated      Node // *Option, *Include, *Plugin, *Pushtag, *Poptag, *Pushmeta, or *Popmeta
	BlockComment *Comment
	BlanksBefore int
}

func (it *Item) Position() Position { return it.Pos }

// Node returns whichever of Directive/Undated/BlockComment is set, so
// callers that only care about formatting the item don't need to switch on
// which field is populated.
func (it *Item) Node() Node {
	switch {
	case it.Directive != nil:
		return it.Directive
	case it.Undated != nil:
		return it.Undated
	case it.BlockComment != nil:
		return it.BlockComment
	default:
		return nil
	}
}

// File is the root of a parsed Beancount source file: an ordered sequence
// of top-level items exactly as they appeared in the source, before any
// block partitioning or prudent sorting is applied.
type File struct {
	Items []*Item
}

func (f *File) Kind() Kind { return KindFile }

func (f *File) ChildrenFormatted() []Edge {
	edges := make([]Edge, 0, len(f.Items))
	for _, it := range f.Items {
		edges = append(edges, Edge{Child: it.Node()})
	}
	return edges
}

// Directives returns the dated directives in the file, in source order.
func (f *File) Directives() []Directive {
	var out []Directive
	for _, it := range f.Items {
		if it.Directive != nil {
			out = append(out, it.Directive)
		}
	}
	return out
}
