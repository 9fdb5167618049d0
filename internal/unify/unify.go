// Package unify matches pattern trees against concrete trees, binding
// pattern variables to subtrees, and generates concrete trees from patterns
// and bindings.
package unify

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gnolang/natlog/internal/feature"
	"github.com/gnolang/natlog/internal/tree"
)

var ErrUnboundVariable = errors.New("unbound variable")

// Assignment binds variable names to subtrees.
type Assignment map[string]tree.Tree

// Clone returns a shallow copy; bound subtrees are shared, never mutated.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Names returns the bound names, sorted.
func (a Assignment) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Format renders the assignment as "{_X: ..., _Y: ...}".
func (a Assignment) Format(vocab *feature.Vocabulary) string {
	parts := make([]string, 0, len(a))
	for _, name := range a.Names() {
		parts = append(parts, name+": "+tree.Render(vocab, a[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Policy decides whether categories take part in matching.
type Policy int

const (
	// IgnoreCategory matches on shape, tokens and bindings only. Different
	// occurrences of a variable may then sit in different categories.
	IgnoreCategory Policy = iota
	// RequireCategory additionally requires every pattern category to be a
	// subset of the concrete category it is matched against. A variable
	// occurring again must meet a subtree equal to its binding, categories
	// included.
	RequireCategory
)

func (p Policy) String() string {
	switch p {
	case IgnoreCategory:
		return "ignore-category"
	case RequireCategory:
		return "require-category"
	default:
		return "unknown"
	}
}

// Matcher performs unification under a fixed policy. The zero value ignores
// categories.
type Matcher struct {
	Policy Policy
}

// NewMatcher creates a matcher with the given policy.
func NewMatcher(policy Policy) *Matcher {
	return &Matcher{Policy: policy}
}

// Match unifies pattern with concrete, extending a. On success it returns
// the extended assignment; a itself is never modified.
func (m *Matcher) Match(pattern, concrete tree.Tree, a Assignment) (Assignment, bool) {
	out := a.Clone()
	if !m.match(pattern, concrete, out) {
		return nil, false
	}
	return out, true
}

func (m *Matcher) match(pattern, concrete tree.Tree, a Assignment) bool {
	if concrete == nil {
		return false
	}
	if m.Policy == RequireCategory && !feature.Subset(pattern.Category(), concrete.Category()) {
		return false
	}

	switch p := pattern.(type) {
	case *tree.Terminal:
		c, ok := concrete.(*tree.Terminal)
		return ok && c.Token == p.Token

	case *tree.Variable:
		if bound, ok := a[p.Name]; ok {
			return m.Same(bound, concrete)
		}
		a[p.Name] = concrete
		return true

	case *tree.Node:
		c, ok := concrete.(*tree.Node)
		if !ok {
			return false
		}
		return m.match(p.Left, c.Left, a) && m.match(p.Right, c.Right, a)

	default:
		return false
	}
}

// Same reports whether two concrete trees count as the same binding. Under
// RequireCategory every category must be identical; otherwise only shape and
// tokens are compared.
func (m *Matcher) Same(x, y tree.Tree) bool {
	if m.Policy == RequireCategory {
		return tree.Equal(x, y)
	}
	return m.match(x, y, Assignment{})
}

// Generate builds a concrete tree from pattern by copying its structure and
// substituting every variable with a copy of its binding.
func Generate(pattern tree.Tree, a Assignment) (tree.Tree, error) {
	switch p := pattern.(type) {
	case *tree.Node:
		left, err := Generate(p.Left, a)
		if err != nil {
			return nil, err
		}
		right, err := Generate(p.Right, a)
		if err != nil {
			return nil, err
		}
		return &tree.Node{Top: p.Top, Left: left, Right: right}, nil

	case *tree.Terminal:
		return tree.Clone(p), nil

	case *tree.Variable:
		bound, ok := a[p.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, p.Name)
		}
		return tree.Clone(bound), nil

	default:
		return nil, fmt.Errorf("unsupported tree %T", pattern)
	}
}
