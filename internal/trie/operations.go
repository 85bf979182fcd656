package trie

import "fmt"

// Insert adds a key-definition pair to the trie.
// Re-inserting an existing key replaces its definition and leaves counts alone.
func (t *Trie) Insert(key, definition string) error {
	if !validKey(key) {
		return fmt.Errorf("insert %q: %w", key, ErrInvalidKey)
	}

	path := make([]*Node, 0, len(key)+1)
	node := t.root
	path = append(path, node)
	for i := 0; i < len(key); i++ {
		idx, _ := index(key[i])
		if node.children[idx] == nil {
			node.children[idx] = &Node{}
		}
		node = node.children[idx]
		path = append(path, node)
	}

	if !node.isWord {
		for _, n := range path {
			n.count++
		}
	}
	node.isWord = true
	node.definition = definition
	return nil
}

// Delete removes key from the trie and reports whether it was present.
// The nodes on its path stay in place; a branch whose count drops to zero is
// dead and is skipped by every query.
func (t *Trie) Delete(key string) bool {
	path := t.path(key)
	if path == nil {
		return false
	}
	node := path[len(path)-1]
	if !node.isWord {
		return false
	}

	node.isWord = false
	node.definition = ""
	for _, n := range path {
		n.count--
	}
	return true
}

// Search returns the definition associated with the key
func (t *Trie) Search(key string) (string, bool) {
	node := t.findNode(key)
	if node != nil && node.isWord {
		return node.definition, true
	}
	return "", false
}

// CountPrefix returns the number of keys starting with prefix.
// The empty prefix matches every key.
func (t *Trie) CountPrefix(prefix string) int {
	node := t.findNode(prefix)
	if node == nil {
		return 0
	}
	return node.count
}

// Len returns the number of keys in the trie
func (t *Trie) Len() int {
	return t.root.count
}

// NodeCount returns the number of allocated nodes, including the root and dead branches
func (t *Trie) NodeCount() int {
	return countNodes(t.root)
}

func countNodes(node *Node) int {
	total := 1
	for _, child := range node.children {
		if child != nil {
			total += countNodes(child)
		}
	}
	return total
}

// findNode returns the node corresponding to the key, or nil if not found
func (t *Trie) findNode(key string) *Node {
	node := t.root
	for i := 0; i < len(key); i++ {
		idx, ok := index(key[i])
		if !ok || node.children[idx] == nil {
			return nil
		}
		node = node.children[idx]
	}
	return node
}

// path returns every node from the root to the node for key, or nil if the path is incomplete
func (t *Trie) path(key string) []*Node {
	path := make([]*Node, 0, len(key)+1)
	node := t.root
	path = append(path, node)
	for i := 0; i < len(key); i++ {
		idx, ok := index(key[i])
		if !ok || node.children[idx] == nil {
			return nil
		}
		node = node.children[idx]
		path = append(path, node)
	}
	return path
}

// KeysWithPrefix returns all keys in the trie that have the given prefix,
// in lexicographical order
func (t *Trie) KeysWithPrefix(prefix string) []string {
	results := []string{}
	node := t.findNode(prefix)
	if node == nil || node.count == 0 {
		return results
	}

	buf := []byte(prefix)
	collectKeys(node, buf, &results)
	return results
}

// collectKeys is a helper function to recursively collect all keys below node.
// Letter order of the child array yields lexicographical output.
func collectKeys(node *Node, buf []byte, results *[]string) {
	if node.isWord {
		*results = append(*results, string(buf))
	}
	for i, child := range node.children {
		if child == nil || child.count == 0 {
			continue
		}
		collectKeys(child, append(buf, byte('a'+i)), results)
	}
}
