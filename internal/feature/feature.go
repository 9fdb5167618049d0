// Package feature implements the fixed vocabulary of grammatical properties
// and the bitset representation used for categories throughout the parser
// and the proof engine.
//
// A category is a Set: bit i is set iff property i of the vocabulary holds.
// The bit layout never leaves this package; callers build sets from names
// and compare them with Subset.
package feature

import (
	"errors"
	"fmt"
	"strings"
)

// MaxProperties is the largest vocabulary a Set can represent.
const MaxProperties = 64

var (
	ErrUnknownProperty   = errors.New("unknown property")
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
)

// Set is an immutable set of properties drawn from a Vocabulary.
type Set uint64

// Empty is the set with no properties.
const Empty Set = 0

// Union returns the properties present in either set.
func (s Set) Union(o Set) Set { return s | o }

// Without returns s with every property of o removed.
func (s Set) Without(o Set) Set { return s &^ o }

// Subset reports whether every property of required is present in actual.
// Extra properties on actual are always permitted.
func Subset(required, actual Set) bool {
	return actual|required == actual
}

// Vocabulary is an ordered list of property names.
type Vocabulary struct {
	names []string
	index map[string]int
}

// NewVocabulary creates a vocabulary from unique, non-empty names.
func NewVocabulary(names []string) (*Vocabulary, error) {
	if len(names) > MaxProperties {
		return nil, fmt.Errorf("%w: %d properties exceed the limit of %d", ErrInvalidVocabulary, len(names), MaxProperties)
	}

	v := &Vocabulary{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, "|+- ") {
			return nil, fmt.Errorf("%w: bad property name %q", ErrInvalidVocabulary, names[i])
		}
		if _, dup := v.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate property %q", ErrInvalidVocabulary, name)
		}
		v.names[i] = name
		v.index[name] = i
	}
	return v, nil
}

// Len returns the number of properties.
func (v *Vocabulary) Len() int { return len(v.names) }

// Names returns a copy of the property names in vocabulary order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Bit returns the single-property set for name.
func (v *Vocabulary) Bit(name string) (Set, error) {
	i, ok := v.index[name]
	if !ok {
		return Empty, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return Set(1) << uint(i), nil
}

// Encode converts property names to a set.
func (v *Vocabulary) Encode(names []string) (Set, error) {
	var s Set
	for _, name := range names {
		b, err := v.Bit(name)
		if err != nil {
			return Empty, err
		}
		s |= b
	}
	return s, nil
}

// Parse encodes a "|"-joined list of property names. The empty string is
// the empty set.
func (v *Vocabulary) Parse(text string) (Set, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty, nil
	}
	parts := strings.Split(text, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return v.Encode(parts)
}

// Decode returns the names of the properties in s, in vocabulary order.
// Bits beyond the vocabulary are ignored.
func (v *Vocabulary) Decode(s Set) []string {
	var names []string
	for i, name := range v.names {
		if s&(Set(1)<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return names
}

// Format is the "|"-joined form of Decode.
func (v *Vocabulary) Format(s Set) string {
	return strings.Join(v.Decode(s), "|")
}
