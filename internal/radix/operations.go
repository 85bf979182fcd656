package radix

import "strings"

// match returns the first child of n whose segment is a prefix of rest
func (n *Node) match(rest string) *Node {
	for _, child := range n.children {
		if strings.HasPrefix(rest, child.segment) {
			return child
		}
	}
	return nil
}

// walk consumes key segment by segment and returns the node reached together
// with the consumed segments. It returns nil if some remainder matches no child.
func (t *Tree) walk(key string) (*Node, []string) {
	node := t.root
	var segments []string
	rest := key
	for rest != "" {
		child := node.match(rest)
		if child == nil {
			return nil, nil
		}
		segments = append(segments, child.segment)
		rest = rest[len(child.segment):]
		node = child
	}
	return node, segments
}

// Search returns the definition associated with the key
func (t *Tree) Search(key string) (string, bool) {
	node, _ := t.walk(key)
	if node == nil || !node.isWord {
		return "", false
	}
	return node.definition, true
}

// Sequence returns the segments consumed on the way to key. It reports false
// unless key is stored in the tree.
func (t *Tree) Sequence(key string) ([]string, bool) {
	node, segments := t.walk(key)
	if node == nil || !node.isWord {
		return nil, false
	}
	return segments, true
}

// CountPrefix returns the number of keys starting with prefix. A prefix that
// ends inside an edge counts every key below that edge.
func (t *Tree) CountPrefix(prefix string) int {
	node, _ := t.locate(prefix)
	if node == nil {
		return 0
	}
	return node.count
}

// locate finds the highest node whose path starts with prefix. It also
// returns the full path of that node, which may extend past prefix when
// prefix ends inside an edge.
func (t *Tree) locate(prefix string) (*Node, string) {
	node := t.root
	rest := prefix
	consumed := 0
	for rest != "" {
		var next *Node
		for _, child := range node.children {
			if strings.HasPrefix(rest, child.segment) {
				next = child
				break
			}
			if strings.HasPrefix(child.segment, rest) {
				return child, prefix[:consumed] + child.segment
			}
		}
		if next == nil {
			return nil, ""
		}
		consumed += len(next.segment)
		rest = rest[len(next.segment):]
		node = next
	}
	return node, prefix
}

// Len returns the number of keys in the tree
func (t *Tree) Len() int {
	return t.root.count
}

// NodeCount returns the number of nodes, including the root
func (t *Tree) NodeCount() int {
	return countNodes(t.root)
}

func countNodes(n *Node) int {
	total := 1
	for _, child := range n.children {
		total += countNodes(child)
	}
	return total
}

// KeysWithPrefix returns all keys in the tree that have the given prefix,
// in lexicographical order
func (t *Tree) KeysWithPrefix(prefix string) []string {
	results := []string{}
	node, path := t.locate(prefix)
	if node == nil {
		return results
	}
	collectKeys(node, path, &results)
	return results
}

func collectKeys(n *Node, path string, results *[]string) {
	if n.isWord {
		*results = append(*results, path)
	}
	for _, child := range n.children {
		collectKeys(child, path+child.segment, results)
	}
}
