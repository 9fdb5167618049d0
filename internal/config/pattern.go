package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/natlog/internal/tree"
)

// PatternSpec is a structured pattern written as a yaml sequence:
//
//	[S, [NP, [DET, all], [N, _X]], [VP, [TR, are], [NP, _Y]]]
//
// A two-element sequence is a leaf (category, token); a three-element one is
// a node (category, left, right).
type PatternSpec struct {
	spec tree.Spec
}

// Spec returns the decoded tree spec.
func (p *PatternSpec) Spec() *tree.Spec {
	return &p.spec
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PatternSpec) UnmarshalYAML(value *yaml.Node) error {
	s, err := decodeSpec(value)
	if err != nil {
		return err
	}
	p.spec = *s
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p PatternSpec) MarshalYAML() (interface{}, error) {
	return encodeSpec(&p.spec), nil
}

func decodeSpec(n *yaml.Node) (*tree.Spec, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %w: expected a sequence", n.Line, tree.ErrInvalidSpec)
	}
	if len(n.Content) < 2 || len(n.Content) > 3 {
		return nil, fmt.Errorf("line %d: %w: expected 2 or 3 elements, got %d", n.Line, tree.ErrInvalidSpec, len(n.Content))
	}
	head := n.Content[0]
	if head.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: %w: category must be a string", head.Line, tree.ErrInvalidSpec)
	}

	if len(n.Content) == 2 {
		leaf := n.Content[1]
		if leaf.Kind != yaml.ScalarNode || leaf.Value == "" {
			return nil, fmt.Errorf("line %d: %w: leaf token must be a non-empty string", leaf.Line, tree.ErrInvalidSpec)
		}
		return &tree.Spec{Category: head.Value, Token: leaf.Value}, nil
	}

	left, err := decodeSpec(n.Content[1])
	if err != nil {
		return nil, err
	}
	right, err := decodeSpec(n.Content[2])
	if err != nil {
		return nil, err
	}
	return &tree.Spec{Category: head.Value, Left: left, Right: right}, nil
}

func encodeSpec(s *tree.Spec) []interface{} {
	if s.Token != "" || s.Left == nil || s.Right == nil {
		return []interface{}{s.Category, s.Token}
	}
	return []interface{}{s.Category, encodeSpec(s.Left), encodeSpec(s.Right)}
}
