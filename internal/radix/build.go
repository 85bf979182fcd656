package radix

import (
	"fmt"
	"strings"

	"github.com/kumarlokesh/radix-dictionary/internal/trie"
)

// Build compresses t into a new Tree. The source trie is only read; callers
// drop it afterwards. Branches whose count is zero (left behind by deletes)
// are pruned.
func Build(t *trie.Trie) (*Tree, error) {
	src := t.Root()
	root := &Node{
		count:    src.Count(),
		children: compressChildren(src),
	}

	tree := &Tree{root: root}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("build compressed trie: %w", err)
	}
	return tree, nil
}

// compressChildren compresses every live child edge of n, in letter order
func compressChildren(n *trie.Node) []*Node {
	var out []*Node
	n.Children(func(letter byte, child *trie.Node) {
		if child.Count() == 0 {
			return
		}
		out = append(out, compressEdge(letter, child))
	})
	return out
}

// compressEdge follows the edge labelled letter into node, merging every
// following node that is not a word and has exactly one live child.
func compressEdge(letter byte, node *trie.Node) *Node {
	var segment strings.Builder
	segment.WriteByte(letter)

	for !node.IsWord() {
		next, nextLetter, ok := onlyLiveChild(node)
		if !ok {
			break
		}
		segment.WriteByte(nextLetter)
		node = next
	}

	out := &Node{
		segment:  segment.String(),
		isWord:   node.IsWord(),
		count:    node.Count(),
		children: compressChildren(node),
	}
	if out.isWord {
		out.definition = node.Definition()
	}
	return out
}

// onlyLiveChild returns the single child of n with a nonzero count.
// ok is false when n has zero or several live children.
func onlyLiveChild(n *trie.Node) (child *trie.Node, letter byte, ok bool) {
	live := 0
	n.Children(func(l byte, c *trie.Node) {
		if c.Count() == 0 {
			return
		}
		live++
		child, letter = c, l
	})
	if live != 1 {
		return nil, 0, false
	}
	return child, letter, true
}

// Validate checks the structural invariants of the tree: non-empty segments
// below the root, distinct first bytes among siblings, and counts that match
// the words below each node.
func (t *Tree) Validate() error {
	if t.root.isWord {
		return fmt.Errorf("root marked as word: %w", ErrCountMismatch)
	}
	_, err := validateNode(t.root, "")
	return err
}

func validateNode(n *Node, path string) (int, error) {
	words := 0
	if n.isWord {
		words++
	}

	var seen [256]bool
	for _, child := range n.children {
		if child.segment == "" {
			return 0, fmt.Errorf("below %q: %w", path, ErrEmptySegment)
		}
		first := child.segment[0]
		if seen[first] {
			return 0, fmt.Errorf("below %q, byte %q: %w", path, first, ErrSegmentConflict)
		}
		seen[first] = true

		sub, err := validateNode(child, path+child.segment)
		if err != nil {
			return 0, err
		}
		words += sub
	}

	if words != n.count {
		return 0, fmt.Errorf("at %q count %d, subtree holds %d: %w", path, n.count, words, ErrCountMismatch)
	}
	return words, nil
}
