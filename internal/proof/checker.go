package proof

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/natlog/internal/tree"
	"github.com/gnolang/natlog/internal/unify"
)

var ErrNoMatch = errors.New("no combination of facts matches the rule inputs")

// Checker justifies proof steps against a rule library.
type Checker struct {
	matcher *unify.Matcher
	logger  *zap.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMatcher sets the matcher, and with it the category policy.
func WithMatcher(m *unify.Matcher) Option {
	return func(c *Checker) {
		if m != nil {
			c.matcher = m
		}
	}
}

// NewChecker creates a checker that ignores categories while matching.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		matcher: unify.NewMatcher(unify.IgnoreCategory),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type candidate struct {
	rule *Rule
	out  unify.Assignment
}

// Check justifies steps in order. The fact list starts as premises; every
// justified step is appended to it, so later steps may cite earlier ones by
// index len(premises)+i. An unjustified step gets the Unjustified marker,
// is not added to the facts, and checking continues.
//
// The result has one entry per step.
func (c *Checker) Check(rules []*Rule, premises, steps []tree.Tree) []Justification {
	have := make([]tree.Tree, len(premises), len(premises)+len(steps))
	copy(have, premises)

	checks := make([]Justification, 0, len(steps))
	for i, step := range steps {
		j := c.justify(rules, have, step)
		if j.Valid() {
			have = append(have, step)
			c.logger.Debug("step justified",
				zap.Int("step", i),
				zap.String("rule", j.Rule.Name),
				zap.Ints("facts", j.Premises))
		} else {
			c.logger.Debug("step unjustified", zap.Int("step", i))
		}
		checks = append(checks, j)
	}
	return checks
}

// justify returns the first justification under the fixed search order:
// candidates, then combinations of facts, then permutations.
func (c *Checker) justify(rules []*Rule, have []tree.Tree, step tree.Tree) Justification {
	for _, cand := range c.candidates(rules, step) {
		var found []int
		combinations(len(have), cand.rule.Arity(), func(combo []int) bool {
			return permutations(combo, func(perm []int) bool {
				in, ok := c.matchInputs(cand.rule, have, perm)
				if !ok || !c.consistent(cand.out, in) {
					return true
				}
				found = append([]int{}, perm...)
				return false
			})
		})
		if found != nil {
			return Justification{Premises: found, Rule: cand.rule}
		}
	}
	return Unjustified
}

// candidates matches every output pattern of every rule, in library order,
// against the step.
func (c *Checker) candidates(rules []*Rule, step tree.Tree) []candidate {
	var out []candidate
	for _, r := range rules {
		for _, pattern := range r.Outputs {
			if a, ok := c.matcher.Match(pattern, step, unify.Assignment{}); ok {
				out = append(out, candidate{rule: r, out: a})
			}
		}
	}
	return out
}

// matchInputs matches rule input j against have[perm[j]], threading one
// assignment through all inputs.
func (c *Checker) matchInputs(r *Rule, have []tree.Tree, perm []int) (unify.Assignment, bool) {
	a := unify.Assignment{}
	for j, pattern := range r.Inputs {
		var ok bool
		a, ok = c.matcher.Match(pattern, have[perm[j]], a)
		if !ok {
			return nil, false
		}
	}
	return a, true
}

// consistent reports whether every variable bound by the output match agrees
// with the binding the inputs chose for it. A variable the inputs never bind
// is unconstrained.
func (c *Checker) consistent(out, in unify.Assignment) bool {
	for name, value := range out {
		bound, ok := in[name]
		if !ok {
			continue
		}
		if !c.matcher.Same(value, bound) {
			return false
		}
	}
	return true
}

// Derive applies r forward: it finds the first ordered selection of facts
// matching the inputs and generates every output pattern from the bindings.
// It returns the selected fact indices with the generated trees.
func (c *Checker) Derive(r *Rule, facts []tree.Tree) ([]int, []tree.Tree, error) {
	if free := r.FreeVariables(); len(free) > 0 {
		return nil, nil, fmt.Errorf("rule %q: %w: %s", r.Name, unify.ErrUnboundVariable, strings.Join(free, ", "))
	}

	var (
		chosen []int
		in     unify.Assignment
	)
	combinations(len(facts), r.Arity(), func(combo []int) bool {
		return permutations(combo, func(perm []int) bool {
			a, ok := c.matchInputs(r, facts, perm)
			if !ok {
				return true
			}
			chosen, in = append([]int{}, perm...), a
			return false
		})
	})
	if chosen == nil {
		return nil, nil, ErrNoMatch
	}

	out := make([]tree.Tree, 0, len(r.Outputs))
	for _, pattern := range r.Outputs {
		t, err := unify.Generate(pattern, in)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, t)
	}
	return chosen, out, nil
}
