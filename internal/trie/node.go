package trie

import "errors"

// AlphabetSize is the number of letters a key may be built from ('a' to 'z').
const AlphabetSize = 26

var (
	// ErrInvalidKey is returned when a key is empty or contains a byte outside 'a'-'z'
	ErrInvalidKey = errors.New("key must be non-empty and contain only lowercase letters")
)

// Node represents a node in the trie
type Node struct {
	// children holds one slot per letter, indexed by letter-'a'
	children [AlphabetSize]*Node

	// isWord marks if some inserted key terminates at this node
	isWord bool

	// definition stores the value associated with the key (if isWord)
	definition string

	// count is the number of word nodes in the subtree rooted here, inclusive
	count int
}

// IsWord reports whether a key terminates at this node.
func (n *Node) IsWord() bool {
	return n.isWord
}

// Definition returns the definition stored at this node.
func (n *Node) Definition() string {
	return n.definition
}

// Count returns the number of keys terminating in this node's subtree.
func (n *Node) Count() int {
	return n.count
}

// Children calls fn for every present child in letter order.
// Children whose subtree no longer holds any key are included.
func (n *Node) Children(fn func(letter byte, child *Node)) {
	for i, child := range n.children {
		if child != nil {
			fn(byte('a'+i), child)
		}
	}
}

// Trie represents a character-per-node trie over the lowercase alphabet
type Trie struct {
	root *Node
}

// New creates a new empty trie
func New() *Trie {
	return &Trie{
		root: &Node{},
	}
}

// Root returns the root node. The root never holds a key.
func (t *Trie) Root() *Node {
	return t.root
}

// index maps a key byte to its child slot, reporting false for bytes outside the alphabet
func index(ch byte) (int, bool) {
	if ch < 'a' || ch > 'z' {
		return 0, false
	}
	return int(ch - 'a'), true
}

// validKey reports whether key may be stored in the trie
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if _, ok := index(key[i]); !ok {
			return false
		}
	}
	return true
}
