package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/natlog/internal/grammar"
	"github.com/gnolang/natlog/internal/proof"
	tt "github.com/gnolang/natlog/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func toyGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.FromData(grammar.Data{
		Properties: []string{"DET", "N", "NP", "VP", "TR", "S"},
		Rules:      []string{"DET ==> N-N+NP", "NP ==> VP-VP+S", "TR-TR+VP <== NP"},
		Lexicon: map[string]string{
			"all": "DET", "are": "TR", "dogs": "NP|N", "pets": "NP|N",
			"_X": "NP|N", "_Y": "NP|N", "_Z": "NP|N",
		},
	})
	require.NoError(t, err)
	return g
}

func TestFormatProof(t *testing.T) {
	t.Parallel()

	report := tt.ProofReport{
		File:     "proofs.yaml",
		Name:     "deterministic",
		Logic:    "all-and-some",
		Premises: []string{"all dogs are pets", "some dogs are dogs", "all dogs are sweethearts"},
		Steps: []tt.StepResult{
			{Index: 3, Sentence: "some dogs are pets", Justified: true, Premises: []int{0, 1}, Rule: "application of all to some"},
			{Index: -1, Sentence: "some pets are food"},
			{Index: 4, Sentence: "some pets are dogs", Justified: true, Premises: []int{3}, Rule: "reflexivity of some"},
			{Index: 5, Sentence: "all pets are pets", Justified: true, Rule: "symmetric all"},
		},
	}

	expected := `proof: deterministic [all-and-some]
 --> proofs.yaml
1. all dogs are pets, premise
2. some dogs are dogs, premise
3. all dogs are sweethearts, premise
4. some dogs are pets, 1, 2 application of all to some
-. some pets are food, unjustified
5. some pets are dogs, 4 reflexivity of some
6. all pets are pets, symmetric all
`
	assert.Equal(t, expected, FormatProof(report))
	assert.Equal(t, "deterministic: 1 of 4 steps unjustified", Summary(report))
}

func TestFormatProofError(t *testing.T) {
	t.Parallel()

	report := tt.ProofReport{Name: "broken", Err: `premise 1: unknown token: "cats"`}
	assert.Equal(t, "proof: broken\nerror: premise 1: unknown token: \"cats\"\n", FormatProof(report))
	assert.Equal(t, "broken: not checked", Summary(report))
}

func TestFormatProofsWidth(t *testing.T) {
	t.Parallel()

	premises := make([]string, 10)
	for i := range premises {
		premises[i] = "all dogs are dogs"
	}
	reports := []tt.ProofReport{
		{Name: "a", Premises: premises},
		{Name: "b", Steps: []tt.StepResult{{Index: 0, Sentence: "all dogs are dogs", Justified: true, Rule: "symmetric all"}}},
	}

	out := FormatProofs(reports)
	assert.Contains(t, out, " 1. all dogs are dogs, premise\n")
	assert.Contains(t, out, "10. all dogs are dogs, premise\n")
	assert.Contains(t, out, "premise\n\nproof: b\n1. all dogs are dogs, symmetric all\n")
	assert.Equal(t, "b: valid (1 steps)", Summary(reports[1]))
}

func TestFormatTree(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t)

	trees, err := g.ParseSentence("all dogs are _X")
	require.NoError(t, err)
	require.Len(t, trees, 1)

	expected := `S
  NP
    DET all
    N dogs
  VP
    TR are
    NP _X
`
	assert.Equal(t, expected, FormatTree(g.Vocabulary(), trees[0]))
}

func TestFormatRule(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t)

	r, err := proof.NewRuleFromSentences(g, "transitivity of all",
		[]string{"all _X are _Y", "all _Y are _Z"}, []string{"all _X are _Z"})
	require.NoError(t, err)

	expected := `transitivity of all
    all _X are _Y
    all _Y are _Z
    ----
    all _X are _Z
`
	assert.Equal(t, expected, FormatRule(r))
}
