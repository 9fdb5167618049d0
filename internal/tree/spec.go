package tree

import (
	"errors"
	"fmt"

	"github.com/gnolang/natlog/internal/feature"
)

var ErrInvalidSpec = errors.New("invalid pattern spec")

// Spec is structured pattern data. A spec with a Token is a leaf; otherwise
// both Left and Right must be present.
type Spec struct {
	Category string
	Token    string
	Left     *Spec
	Right    *Spec
}

// Build converts a spec into a tree, encoding every category with vocab.
func Build(vocab *feature.Vocabulary, spec *Spec) (Tree, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: missing node", ErrInvalidSpec)
	}
	top, err := vocab.Parse(spec.Category)
	if err != nil {
		return nil, err
	}

	isLeaf := spec.Token != ""
	hasChildren := spec.Left != nil || spec.Right != nil
	switch {
	case isLeaf && hasChildren:
		return nil, fmt.Errorf("%w: %s has both a token and children", ErrInvalidSpec, spec.Category)
	case isLeaf:
		return NewLeaf(top, spec.Token), nil
	case spec.Left == nil || spec.Right == nil:
		return nil, fmt.Errorf("%w: %s needs two children or a token", ErrInvalidSpec, spec.Category)
	}

	left, err := Build(vocab, spec.Left)
	if err != nil {
		return nil, err
	}
	right, err := Build(vocab, spec.Right)
	if err != nil {
		return nil, err
	}
	return &Node{Top: top, Left: left, Right: right}, nil
}
