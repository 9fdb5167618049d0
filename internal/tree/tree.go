package tree

import (
	"strings"

	"github.com/gnolang/natlog/internal/feature"
)

// VariablePrefix marks a token as a pattern variable.
const VariablePrefix = "_"

// IsVariableToken reports whether tok names a pattern variable.
func IsVariableToken(tok string) bool {
	return strings.HasPrefix(tok, VariablePrefix) && len(tok) > len(VariablePrefix)
}

// Tree is a derivation tree or a pattern tree.
// The variant set is closed: *Node, *Terminal and *Variable.
type Tree interface {
	isTree()
	Category() feature.Set
}

// Node is a binary constituent. It owns both subtrees.
type Node struct {
	Top   feature.Set
	Left  Tree
	Right Tree
}

// Terminal is a leaf holding literal text.
type Terminal struct {
	Top   feature.Set
	Token string
}

// Variable is a leaf placeholder bound during unification.
type Variable struct {
	Top  feature.Set
	Name string
}

func (*Node) isTree()     {}
func (*Terminal) isTree() {}
func (*Variable) isTree() {}

func (n *Node) Category() feature.Set     { return n.Top }
func (t *Terminal) Category() feature.Set { return t.Top }
func (v *Variable) Category() feature.Set { return v.Top }

// NewLeaf returns a Variable when tok carries the variable prefix and a
// Terminal otherwise.
func NewLeaf(top feature.Set, tok string) Tree {
	if IsVariableToken(tok) {
		return &Variable{Top: top, Name: tok}
	}
	return &Terminal{Top: top, Token: tok}
}

// Equal reports deep structural equality: same variant, same category and
// equal children, token or name.
func Equal(a, b Tree) bool {
	switch x := a.(type) {
	case *Node:
		y, ok := b.(*Node)
		return ok && x.Top == y.Top && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Terminal:
		y, ok := b.(*Terminal)
		return ok && x.Top == y.Top && x.Token == y.Token
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Top == y.Top && x.Name == y.Name
	default:
		return a == nil && b == nil
	}
}

// Clone returns a deep copy of t.
func Clone(t Tree) Tree {
	switch x := t.(type) {
	case *Node:
		return &Node{Top: x.Top, Left: Clone(x.Left), Right: Clone(x.Right)}
	case *Terminal:
		c := *x
		return &c
	case *Variable:
		c := *x
		return &c
	default:
		return nil
	}
}

// Flatten returns the leaf tokens of t from left to right. Variables
// contribute their names, so a pattern flattens back to its source sentence.
func Flatten(t Tree) []string {
	var out []string
	walkLeaves(t, func(leaf Tree) {
		switch x := leaf.(type) {
		case *Terminal:
			out = append(out, x.Token)
		case *Variable:
			out = append(out, x.Name)
		}
	})
	return out
}

// Text is the leaf flattening used to render sentences: the terminal tokens
// of t separated by single spaces. Variables are skipped.
func Text(t Tree) string {
	var parts []string
	walkLeaves(t, func(leaf Tree) {
		if x, ok := leaf.(*Terminal); ok {
			parts = append(parts, x.Token)
		}
	})
	return strings.Join(parts, " ")
}

// Variables returns the variable names of t in first-occurrence order.
func Variables(t Tree) []string {
	seen := make(map[string]bool)
	var names []string
	walkLeaves(t, func(leaf Tree) {
		if x, ok := leaf.(*Variable); ok && !seen[x.Name] {
			seen[x.Name] = true
			names = append(names, x.Name)
		}
	})
	return names
}

func walkLeaves(t Tree, fn func(Tree)) {
	switch x := t.(type) {
	case *Node:
		walkLeaves(x.Left, fn)
		walkLeaves(x.Right, fn)
	case *Terminal, *Variable:
		fn(x)
	}
}

// Render returns the canonical bracketed form of t, e.g.
//
//	S [NP [DET all N dogs] VP [TR are NP pets]]
func Render(vocab *feature.Vocabulary, t Tree) string {
	var sb strings.Builder
	render(&sb, vocab, t)
	return sb.String()
}

func render(sb *strings.Builder, vocab *feature.Vocabulary, t Tree) {
	sb.WriteString(vocab.Format(t.Category()))
	switch x := t.(type) {
	case *Node:
		sb.WriteString(" [")
		render(sb, vocab, x.Left)
		sb.WriteByte(' ')
		render(sb, vocab, x.Right)
		sb.WriteByte(']')
	case *Terminal:
		sb.WriteByte(' ')
		sb.WriteString(x.Token)
	case *Variable:
		sb.WriteByte(' ')
		sb.WriteString(x.Name)
	}
}
