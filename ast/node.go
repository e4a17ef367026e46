// Package ast declares the types used to represent syntax trees for Beancount files.
//
// Two kinds of node exist: token nodes carry a literal text fragment (the
// formatter supplies the spacing around it); tree nodes carry an ordered sequence of named
// children and expose a ChildrenFormatted traversal yielding (child, indented)
// pairs, where indented marks a child that should render one indent level
// deeper than its parent.
//
// The tree produced by the parser is treated as read-only by every other
// package in this module. Nothing here mutates a node once it has been
// constructed; formatting derives new strings, it never rewrites a field.
package ast

// Kind identifies the concrete variant of a Node. The formatter dispatch
// table is keyed by Kind rather than by Go's dynamic type so that lookup is
// a single map access instead of a type switch chain.
type Kind int

const (
	KindToken Kind = iota
	KindFile
	KindBlockComment
	KindInlineComment
	KindOption
	KindInclude
	KindPlugin
	KindPushtag
	KindPoptag
	KindPushmeta
	KindPopmeta
	KindOpen
	KindClose
	KindCommodity
	KindPad
	KindBalance
	KindPrice
	KindEvent
	KindQuery
	KindNote
	KindDocument
	KindCustom
	KindTransaction
	KindPosting
	KindMetaItem
	KindCost
	KindNumberExpr
	KindNumberAddExpr
	KindNumberMulExpr
	KindNumberUnaryExpr
	KindNumberParenExpr
	KindNumber
)

// Node is implemented by every element that can appear in the formatted
// tree, whether a single token or a tree with children.
type Node interface {
	Kind() Kind
}

// Edge pairs a child Node with the indentation flag used while walking a
// TreeNode's children. Indented children render one indent level deeper
// than the node they belong to.
type Edge struct {
	Child    Node
	Indented bool
}

// TreeNode is a Node with an ordered, named sequence of children. The
// default tree handler (used when no specific formatter is registered for a
// Kind) recurses over ChildrenFormatted, propagating the Indented flag into
// a derived child context.
type TreeNode interface {
	Node
	ChildrenFormatted() []Edge
}

// Positioned is implemented by nodes that carry a source position.
type Positioned interface {
	Position() Position
}
