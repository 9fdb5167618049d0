package trie

import (
	"sort"
	"strings"
)

/*
Arena-based token trie

Keys are token sequences (a tokenized sentence); each complete key stores
one value. The engine uses it to remember parse results per sentence so a
premise shared by many proofs is parsed once.

Nodes live in one contiguous slice and refer to their children by index,
which keeps allocations low when many short sentences share prefixes
("all dogs are ...", "all dogs are not ...").
*/

// NodeIndex represents the index of a trie node.
type NodeIndex int

const root NodeIndex = 0

// Arena is a memory pool that stores all trie nodes.
type Arena[V any] struct {
	nodes []arenaNode[V]
	count int
}

type arenaNode[V any] struct {
	// children maps the next token to the child's index.
	children map[string]NodeIndex
	isEnd    bool
	value    V
}

// NewArena creates a new arena holding only the root node.
func NewArena[V any]() *Arena[V] {
	arena := &Arena[V]{
		nodes: make([]arenaNode[V], 0, 64),
	}
	arena.nodes = append(arena.nodes, arenaNode[V]{children: make(map[string]NodeIndex)})
	return arena
}

func (a *Arena[V]) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode[V]{children: make(map[string]NodeIndex)})
	return idx
}

// Insert stores value under sequence, replacing any previous value.
func (a *Arena[V]) Insert(sequence []string, value V) {
	current := root
	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[part] = childIdx
		}
		current = childIdx
	}

	if !a.nodes[current].isEnd {
		a.count++
	}
	a.nodes[current].isEnd = true
	a.nodes[current].value = value
}

// Get returns the value stored under sequence.
func (a *Arena[V]) Get(sequence []string) (V, bool) {
	current := root
	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			var zero V
			return zero, false
		}
		current = childIdx
	}
	node := a.nodes[current]
	return node.value, node.isEnd
}

// Len returns the number of stored sequences.
func (a *Arena[V]) Len() int { return a.count }

// Equal checks whether two tries hold the same sequences. Values are not
// compared.
func (a *Arena[V]) Equal(b *Arena[V]) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}
	return a.equalNodes(root, b, root)
}

func (a *Arena[V]) equalNodes(aIdx NodeIndex, b *Arena[V], bIdx NodeIndex) bool {
	nodeA := a.nodes[aIdx]
	nodeB := b.nodes[bIdx]

	if nodeA.isEnd != nodeB.isEnd || len(nodeA.children) != len(nodeB.children) {
		return false
	}

	for _, key := range sortedKeys(nodeA.children) {
		childB, exists := nodeB.children[key]
		if !exists || !a.equalNodes(nodeA.children[key], b, childB) {
			return false
		}
	}
	return true
}

// DebugString returns a string representation of the trie structure.
func (a *Arena[V]) DebugString() string {
	return a.debugStringNode(root)
}

func (a *Arena[V]) debugStringNode(idx NodeIndex) string {
	node := a.nodes[idx]
	var sb strings.Builder

	if node.isEnd {
		sb.WriteString("*")
	}
	for _, key := range sortedKeys(node.children) {
		sb.WriteString(key)
		sb.WriteString("(")
		sb.WriteString(a.debugStringNode(node.children[key]))
		sb.WriteString(")")
	}
	return sb.String()
}

func sortedKeys(m map[string]NodeIndex) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Trie wraps an Arena.
type Trie[V any] struct {
	arena *Arena[V]
}

// New returns an empty Trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{arena: NewArena[V]()}
}

func (t *Trie[V]) Insert(sequence []string, value V) { t.arena.Insert(sequence, value) }
func (t *Trie[V]) Get(sequence []string) (V, bool)  { return t.arena.Get(sequence) }
func (t *Trie[V]) Len() int                         { return t.arena.Len() }
func (t *Trie[V]) Equal(other *Trie[V]) bool        { return t.arena.Equal(other.arena) }
func (t *Trie[V]) DebugString() string              { return t.arena.DebugString() }
