// Package config loads the grammar, the proof rules and the named logics
// from yaml.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/natlog/internal/grammar"
	"github.com/gnolang/natlog/internal/proof"
	"github.com/gnolang/natlog/internal/tree"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultPath is the configuration file picked up from the working directory.
const DefaultPath = ".natlog.yaml"

var (
	ErrUnknownLogic     = errors.New("unknown logic")
	ErrUnknownProofRule = errors.New("unknown proof rule")
	ErrDuplicateRule    = errors.New("duplicate proof rule")
)

// Config is the yaml description of a grammar and its proof rules.
type Config struct {
	Name          string              `yaml:"name"`
	Root          string              `yaml:"root,omitempty"`
	CheckCategory bool                `yaml:"check_category"`
	Properties    []string            `yaml:"properties"`
	Rules         []string            `yaml:"rules"`
	Lexicon       map[string]string   `yaml:"lexicon"`
	ProofRules    []ProofRuleConfig   `yaml:"proof_rules"`
	Logics        map[string][]string `yaml:"logics"`
}

// ProofRuleConfig describes one proof rule. Sentences and structured forms
// may be mixed; sentence patterns come first.
type ProofRuleConfig struct {
	Name        string        `yaml:"name"`
	Inputs      []string      `yaml:"inputs,omitempty"`
	Outputs     []string      `yaml:"outputs,omitempty"`
	InputForms  []PatternSpec `yaml:"input_forms,omitempty"`
	OutputForms []PatternSpec `yaml:"output_forms,omitempty"`
}

// Default returns the embedded syllogistic configuration.
func Default() (*Config, error) {
	return Parse(defaultConfig)
}

// DefaultBytes returns the raw embedded configuration.
func DefaultBytes() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

// Resolve returns path when it is set. Otherwise it returns DefaultPath
// inside dir if that file exists, and "" (the embedded default) if not.
func Resolve(path, dir string) string {
	if path != "" {
		return path
	}
	candidate := filepath.Join(dir, DefaultPath)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}

// Load reads a configuration file. An empty path selects the default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a yaml configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes cfg as yaml.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// LogicNames returns the configured logic names, sorted.
func (c *Config) LogicNames() []string {
	names := make([]string, 0, len(c.Logics))
	for name := range c.Logics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Library is a built configuration: the grammar, every proof rule in
// declaration order, and the named logics.
type Library struct {
	Name          string
	Grammar       *grammar.Grammar
	Rules         []*proof.Rule
	CheckCategory bool

	byName map[string]*proof.Rule
	logics map[string][]*proof.Rule
}

// Build constructs the grammar and parses every proof rule.
func Build(cfg *Config) (*Library, error) {
	g, err := grammar.FromData(grammar.Data{
		Properties: cfg.Properties,
		Rules:      cfg.Rules,
		Lexicon:    cfg.Lexicon,
		Root:       cfg.Root,
	})
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Name:          cfg.Name,
		Grammar:       g,
		CheckCategory: cfg.CheckCategory,
		byName:        make(map[string]*proof.Rule, len(cfg.ProofRules)),
		logics:        make(map[string][]*proof.Rule, len(cfg.Logics)),
	}

	for _, rc := range cfg.ProofRules {
		if _, dup := lib.byName[rc.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, rc.Name)
		}
		r, err := buildRule(g, rc)
		if err != nil {
			return nil, err
		}
		lib.Rules = append(lib.Rules, r)
		lib.byName[r.Name] = r
	}

	for name, ruleNames := range cfg.Logics {
		rules := make([]*proof.Rule, 0, len(ruleNames))
		for _, rn := range ruleNames {
			r, ok := lib.byName[rn]
			if !ok {
				return nil, fmt.Errorf("logic %q: %w: %q", name, ErrUnknownProofRule, rn)
			}
			rules = append(rules, r)
		}
		lib.logics[name] = rules
	}
	return lib, nil
}

func buildRule(g *grammar.Grammar, rc ProofRuleConfig) (*proof.Rule, error) {
	r, err := proof.NewRuleFromSentences(g, rc.Name, rc.Inputs, rc.Outputs)
	if err != nil {
		return nil, err
	}
	for _, spec := range rc.InputForms {
		t, err := tree.Build(g.Vocabulary(), spec.Spec())
		if err != nil {
			return nil, fmt.Errorf("rule %q input form: %w", rc.Name, err)
		}
		r.Inputs = append(r.Inputs, t)
	}
	for _, spec := range rc.OutputForms {
		t, err := tree.Build(g.Vocabulary(), spec.Spec())
		if err != nil {
			return nil, fmt.Errorf("rule %q output form: %w", rc.Name, err)
		}
		r.Outputs = append(r.Outputs, t)
	}
	return r, nil
}

// Rule returns the proof rule with the given name.
func (l *Library) Rule(name string) (*proof.Rule, bool) {
	r, ok := l.byName[name]
	return r, ok
}

// Logic returns the ordered rules of a named logic. The empty name selects
// every rule in declaration order.
func (l *Library) Logic(name string) ([]*proof.Rule, error) {
	if name == "" {
		return l.Rules, nil
	}
	rules, ok := l.logics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogic, name)
	}
	return rules, nil
}

// LogicNames returns the names of the built logics, sorted.
func (l *Library) LogicNames() []string {
	names := make([]string, 0, len(l.logics))
	for name := range l.logics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
