package grammar

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gnolang/natlog/internal/feature"
)

var ErrMalformedRule = errors.New("malformed grammar rule")

// Direction selects which child requirement feeds the parent category.
type Direction int

const (
	// Forward rules ("LHS ==> RHS-REM+ADD") build the parent from the right requirement.
	Forward Direction = iota
	// Backward rules ("LHS-REM+ADD <== RHS") build the parent from the left requirement.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Rule is a binary rewrite rule over feature sets.
//
// The parent category is always derived from the other fields by Top, so a
// rule stays consistent however its fields change.
type Rule struct {
	Left      feature.Set
	Right     feature.Set
	Direction Direction
	Remove    feature.Set
	Add       feature.Set
}

// NewRule creates a rule.
func NewRule(left, right feature.Set, dir Direction, remove, add feature.Set) *Rule {
	return &Rule{Left: left, Right: right, Direction: dir, Remove: remove, Add: add}
}

// Top returns the category the rule assigns to the parent. It depends only
// on the requirements, never on the actual children.
func (r *Rule) Top() feature.Set {
	if r.Direction == Forward {
		return r.Right.Union(r.Add).Without(r.Remove)
	}
	return r.Left.Union(r.Add).Without(r.Remove)
}

// Admits reports whether a left and a right child with the given categories
// satisfy the rule's requirements.
func (r *Rule) Admits(left, right feature.Set) bool {
	return feature.Subset(r.Left, left) && feature.Subset(r.Right, right)
}

// Format returns the textual notation of the rule, which ParseRule accepts.
func (r *Rule) Format(vocab *feature.Vocabulary) string {
	if r.Direction == Forward {
		return fmt.Sprintf("%s ==> %s-%s+%s",
			vocab.Format(r.Left), vocab.Format(r.Right), vocab.Format(r.Remove), vocab.Format(r.Add))
	}
	return fmt.Sprintf("%s-%s+%s <== %s",
		vocab.Format(r.Left), vocab.Format(r.Remove), vocab.Format(r.Add), vocab.Format(r.Right))
}

var (
	forwardRule  = regexp.MustCompile(`^([A-Za-z0-9_|]+)\s*==>\s*([A-Za-z0-9_|]+)-([A-Za-z0-9_|]*)\+([A-Za-z0-9_|]*)$`)
	backwardRule = regexp.MustCompile(`^([A-Za-z0-9_|]+)-([A-Za-z0-9_|]*)\+([A-Za-z0-9_|]*)\s*<==\s*([A-Za-z0-9_|]+)$`)
)

// ParseRule parses "LHS ==> RHS-REM+ADD" (Forward) or "LHS-REM+ADD <== RHS"
// (Backward). Each part is a "|"-joined list of property names.
func ParseRule(vocab *feature.Vocabulary, text string) (*Rule, error) {
	var (
		parts [4]string // left, right, remove, add
		dir   Direction
	)
	if m := forwardRule.FindStringSubmatch(text); m != nil {
		parts = [4]string{m[1], m[2], m[3], m[4]}
		dir = Forward
	} else if m := backwardRule.FindStringSubmatch(text); m != nil {
		parts = [4]string{m[1], m[4], m[2], m[3]}
		dir = Backward
	} else {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRule, text)
	}

	var sets [4]feature.Set
	for i, p := range parts {
		s, err := vocab.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformedRule, text, err)
		}
		sets[i] = s
	}
	return NewRule(sets[0], sets[1], dir, sets[2], sets[3]), nil
}
