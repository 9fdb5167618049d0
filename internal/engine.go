package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/natlog/internal/config"
	"github.com/gnolang/natlog/internal/grammar"
	"github.com/gnolang/natlog/internal/proof"
	"github.com/gnolang/natlog/internal/tree"
	"github.com/gnolang/natlog/internal/trie"
	tt "github.com/gnolang/natlog/internal/types"
	"github.com/gnolang/natlog/internal/unify"
)

var ErrNoParse = errors.New("sentence has no parse")

// ProofFile is the yaml layout of a proof file.
type ProofFile struct {
	Proofs []Proof `yaml:"proofs"`
}

// Proof is one proof: premises, then the steps to justify, under a named
// logic (empty means every configured rule).
type Proof struct {
	Name     string   `yaml:"name"`
	Logic    string   `yaml:"logic,omitempty"`
	Premises []string `yaml:"premises"`
	Steps    []string `yaml:"steps"`
}

// Engine checks proofs against a built configuration.
type Engine struct {
	lib     *config.Library
	checker *proof.Checker
	logger  *zap.Logger

	cacheMu  sync.RWMutex
	parses   *trie.Trie[[]tree.Tree]
	inflight singleflight.Group

	watcher   *fsnotify.Watcher
	watchDirs []string
	done      chan struct{}
	onReport  func(filename string, reports []tt.ProofReport)
}

// NewEngine creates an engine. Categories take part in matching only when
// the library enables check_category.
func NewEngine(lib *config.Library, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := unify.IgnoreCategory
	if lib.CheckCategory {
		policy = unify.RequireCategory
	}
	return &Engine{
		lib: lib,
		checker: proof.NewChecker(
			proof.WithMatcher(unify.NewMatcher(policy)),
			proof.WithLogger(logger),
		),
		logger: logger,
		parses: trie.New[[]tree.Tree](),
	}
}

// Library returns the configuration the engine checks against.
func (e *Engine) Library() *config.Library { return e.lib }

// Parse returns every parse of sentence. Results are cached per token
// sequence for the lifetime of the engine; concurrent misses on the same
// sentence share one parse.
func (e *Engine) Parse(sentence string) ([]tree.Tree, error) {
	tokens := grammar.Tokenize(sentence)

	e.cacheMu.RLock()
	cached, ok := e.parses.Get(tokens)
	e.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := e.inflight.Do(strings.Join(tokens, " "), func() (any, error) {
		e.cacheMu.RLock()
		cached, ok := e.parses.Get(tokens)
		e.cacheMu.RUnlock()
		if ok {
			return cached, nil
		}

		trees, err := e.lib.Grammar.Parse(tokens)
		if err != nil {
			return nil, err
		}

		e.cacheMu.Lock()
		e.parses.Insert(tokens, trees)
		e.cacheMu.Unlock()
		return trees, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]tree.Tree), nil
}

func (e *Engine) parseFirst(sentence string) (tree.Tree, error) {
	trees, err := e.Parse(sentence)
	if err != nil {
		return nil, err
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoParse, sentence)
	}
	if len(trees) > 1 {
		e.logger.Debug("ambiguous sentence, using first parse",
			zap.String("sentence", sentence), zap.Int("parses", len(trees)))
	}
	return trees[0], nil
}

// Check checks a single proof. Failures to parse a sentence or to find the
// logic are reported in the result rather than returned.
func (e *Engine) Check(p Proof) tt.ProofReport {
	report := tt.ProofReport{
		Name:     p.Name,
		Logic:    p.Logic,
		Premises: p.Premises,
	}

	rules, err := e.lib.Logic(p.Logic)
	if err != nil {
		report.Err = err.Error()
		return report
	}

	premises, err := e.parseSentences("premise", p.Premises)
	if err != nil {
		report.Err = err.Error()
		return report
	}
	steps, err := e.parseSentences("step", p.Steps)
	if err != nil {
		report.Err = err.Error()
		return report
	}

	checks := e.checker.Check(rules, premises, steps)
	next := len(premises)
	for i, j := range checks {
		res := tt.StepResult{Sentence: p.Steps[i], Justified: j.Valid(), Index: -1}
		if j.Valid() {
			res.Index = next
			res.Premises = j.Premises
			res.Rule = j.Rule.Name
			next++
		}
		report.Steps = append(report.Steps, res)
	}
	return report
}

func (e *Engine) parseSentences(kind string, sentences []string) ([]tree.Tree, error) {
	out := make([]tree.Tree, 0, len(sentences))
	for i, s := range sentences {
		t, err := e.parseFirst(s)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", kind, i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Derive applies the named rule forward to facts. It returns the indices
// of the facts that matched the rule's inputs and the conclusions.
func (e *Engine) Derive(ruleName string, facts []string) ([]int, []tree.Tree, error) {
	r, ok := e.lib.Rule(ruleName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownProofRule, ruleName)
	}
	trees, err := e.parseSentences("fact", facts)
	if err != nil {
		return nil, nil, err
	}
	return e.checker.Derive(r, trees)
}

// Run checks every proof in the given file.
func (e *Engine) Run(filename string) ([]tt.ProofReport, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	reports, err := e.RunSource(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	for i := range reports {
		reports[i].File = filename
	}
	return reports, nil
}

// RunSource checks every proof in a yaml document.
func (e *Engine) RunSource(source []byte) ([]tt.ProofReport, error) {
	var pf ProofFile
	if err := yaml.Unmarshal(source, &pf); err != nil {
		return nil, fmt.Errorf("error parsing proofs: %w", err)
	}

	reports := make([]tt.ProofReport, 0, len(pf.Proofs))
	for i, p := range pf.Proofs {
		if p.Name == "" {
			p.Name = fmt.Sprintf("proof %d", i+1)
		}
		reports = append(reports, e.Check(p))
	}
	return reports, nil
}
