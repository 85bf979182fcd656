// Package radix implements the read-only compressed trie built from a
// trie.Trie. Every edge is labelled by a non-empty segment and chains of
// single-child non-word nodes are merged into one edge.
package radix

import "errors"

var (
	// ErrSegmentConflict is returned when two siblings start with the same byte
	ErrSegmentConflict = errors.New("sibling segments share a first byte")
	// ErrCountMismatch is returned when a node's count disagrees with its subtree
	ErrCountMismatch = errors.New("node count does not match subtree")
	// ErrEmptySegment is returned when a non-root node has an empty segment
	ErrEmptySegment = errors.New("non-root node has an empty segment")
)

// Node is a node of the compressed trie
type Node struct {
	// segment labels the edge from the parent; empty only for the root
	segment string

	isWord     bool
	definition string

	// count is the number of word nodes in the subtree, fixed at build time
	count int

	// children are ordered by the letter they were built from
	children []*Node
}

// Segment returns the label of the edge leading to this node.
func (n *Node) Segment() string {
	return n.segment
}

// IsWord reports whether a key terminates at this node.
func (n *Node) IsWord() bool {
	return n.isWord
}

// Count returns the number of keys terminating in this node's subtree.
func (n *Node) Count() int {
	return n.count
}

// Children returns the node's children in match order. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Tree is an immutable compressed trie
type Tree struct {
	root *Node
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}
