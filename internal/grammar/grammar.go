// Package grammar implements the lexicon, the binary feature rules and the
// CYK chart parser that turns a token sequence into every derivation tree
// reaching the root category.
package grammar

import (
	"fmt"
	"strings"

	"github.com/gnolang/natlog/internal/feature"
	"github.com/gnolang/natlog/internal/tree"
)

// DefaultRoot is the conventional root property ("sentence").
const DefaultRoot = "S"

// Grammar is an immutable bundle of vocabulary, rules, lexicon and root
// category. Build it once and share it by pointer.
type Grammar struct {
	vocab    *feature.Vocabulary
	rules    []*Rule
	lexicon  *Lexicon
	root     feature.Set
	rootName string
}

// Data is the textual description of a grammar.
type Data struct {
	Properties []string
	Rules      []string
	Lexicon    map[string]string
	Root       string
}

// New creates a grammar. root names the single property accepted at the top
// span.
func New(vocab *feature.Vocabulary, rules []*Rule, lexicon *Lexicon, root string) (*Grammar, error) {
	if root == "" {
		root = DefaultRoot
	}
	bit, err := vocab.Bit(root)
	if err != nil {
		return nil, fmt.Errorf("root category: %w", err)
	}
	rs := make([]*Rule, len(rules))
	copy(rs, rules)
	return &Grammar{
		vocab:    vocab,
		rules:    rs,
		lexicon:  lexicon,
		root:     bit,
		rootName: root,
	}, nil
}

// FromData builds a grammar from its textual description. Any error means
// the grammar is unusable.
func FromData(d Data) (*Grammar, error) {
	vocab, err := feature.NewVocabulary(d.Properties)
	if err != nil {
		return nil, err
	}

	rules := make([]*Rule, 0, len(d.Rules))
	for _, text := range d.Rules {
		r, err := ParseRule(vocab, text)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}

	lex, err := NewLexicon(vocab, d.Lexicon)
	if err != nil {
		return nil, err
	}
	return New(vocab, rules, lex, d.Root)
}

func (g *Grammar) Vocabulary() *feature.Vocabulary { return g.vocab }
func (g *Grammar) Lexicon() *Lexicon               { return g.lexicon }
func (g *Grammar) Root() feature.Set               { return g.root }
func (g *Grammar) RootName() string                { return g.rootName }

// Rules returns the rules in declaration order.
func (g *Grammar) Rules() []*Rule {
	out := make([]*Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// Tokenize splits a sentence on whitespace.
func Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

// Parse returns every derivation of tokens whose top category is exactly the
// root category. An empty result is not an error.
func (g *Grammar) Parse(tokens []string) ([]tree.Tree, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	chart, err := g.BuildChart(tokens)
	if err != nil {
		return nil, err
	}

	end := chart.Len() - 1
	var trees []tree.Tree
	for _, e := range chart.Cell(0, end) {
		// construction is permissive, acceptance is exact
		if e.Category != g.root {
			continue
		}
		trees = append(trees, chart.Reconstruct(e.Category, e.Rule, 0, e.Split, end)...)
	}
	return trees, nil
}

// ParseSentence tokenizes sentence and parses it.
func (g *Grammar) ParseSentence(sentence string) ([]tree.Tree, error) {
	return g.Parse(Tokenize(sentence))
}
