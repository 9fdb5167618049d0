package proof

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnolang/natlog/internal/grammar"
	"github.com/gnolang/natlog/internal/tree"
)

// Rule is a named inference rule. Every input pattern must be matched by a
// distinct earlier fact; any output pattern may match the step it
// justifies.
type Rule struct {
	Name    string
	Inputs  []tree.Tree
	Outputs []tree.Tree
}

func (r *Rule) String() string {
	return fmt.Sprintf("<rule %q>", r.Name)
}

// Arity returns the number of input patterns.
func (r *Rule) Arity() int { return len(r.Inputs) }

// FreeVariables returns the output variables no input binds, in
// first-occurrence order. Such a rule can justify steps but never derive.
func (r *Rule) FreeVariables() []string {
	bound := make(map[string]bool)
	for _, in := range r.Inputs {
		for _, name := range tree.Variables(in) {
			bound[name] = true
		}
	}
	var free []string
	for _, out := range r.Outputs {
		for _, name := range tree.Variables(out) {
			if !bound[name] {
				bound[name] = true
				free = append(free, name)
			}
		}
	}
	return free
}

// NewRuleFromSentences parses the input and output sentences with g. Every
// parse of a sentence becomes a pattern, so an ambiguous sentence contributes
// several patterns and one without a parse contributes none.
func NewRuleFromSentences(g *grammar.Grammar, name string, inputs, outputs []string) (*Rule, error) {
	in, err := parseAll(g, inputs)
	if err != nil {
		return nil, fmt.Errorf("rule %q inputs: %w", name, err)
	}
	out, err := parseAll(g, outputs)
	if err != nil {
		return nil, fmt.Errorf("rule %q outputs: %w", name, err)
	}
	return &Rule{Name: name, Inputs: in, Outputs: out}, nil
}

func parseAll(g *grammar.Grammar, sentences []string) ([]tree.Tree, error) {
	var trees []tree.Tree
	for _, s := range sentences {
		parsed, err := g.ParseSentence(s)
		if err != nil {
			return nil, err
		}
		trees = append(trees, parsed...)
	}
	return trees, nil
}

// Justification records why a step holds: the indices into the fact list
// matched against the rule's inputs, in input order. A nil Rule marks a
// step for which no justification was found.
type Justification struct {
	Premises []int
	Rule     *Rule
}

// Unjustified is the marker recorded for a step that could not be justified.
var Unjustified = Justification{}

// Valid reports whether a justification was found.
func (j Justification) Valid() bool { return j.Rule != nil }

// String renders ((0, 1), "rule name"), ((3,), "rule name") or unjustified.
func (j Justification) String() string {
	if !j.Valid() {
		return "unjustified"
	}
	idx := make([]string, len(j.Premises))
	for i, p := range j.Premises {
		idx[i] = strconv.Itoa(p)
	}
	tuple := strings.Join(idx, ", ")
	if len(idx) == 1 {
		tuple += ","
	}
	return fmt.Sprintf("((%s), %q)", tuple, j.Rule.Name)
}
