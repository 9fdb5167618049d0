package grammar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gnolang/natlog/internal/feature"
)

var ErrUnknownToken = errors.New("unknown token")

// Lexicon maps each token to exactly one feature set.
type Lexicon struct {
	entries map[string]feature.Set
}

// NewLexicon encodes every "|"-joined entry of data with vocab.
func NewLexicon(vocab *feature.Vocabulary, data map[string]string) (*Lexicon, error) {
	lex := &Lexicon{entries: make(map[string]feature.Set, len(data))}
	for tok, props := range data {
		s, err := vocab.Parse(props)
		if err != nil {
			return nil, fmt.Errorf("lexicon entry %q: %w", tok, err)
		}
		lex.entries[tok] = s
	}
	return lex, nil
}

// Lookup returns the feature set of tok.
func (l *Lexicon) Lookup(tok string) (feature.Set, error) {
	s, ok := l.entries[tok]
	if !ok {
		return feature.Empty, fmt.Errorf("%w: %q", ErrUnknownToken, tok)
	}
	return s, nil
}

// Tokens returns every known token, sorted.
func (l *Lexicon) Tokens() []string {
	toks := make([]string, 0, len(l.entries))
	for tok := range l.entries {
		toks = append(toks, tok)
	}
	sort.Strings(toks)
	return toks
}

// Len returns the number of entries.
func (l *Lexicon) Len() int { return len(l.entries) }
