package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/natlog/internal/feature"
	"github.com/gnolang/natlog/internal/tree"
)

func toyData() Data {
	return Data{
		Properties: []string{"DET", "V", "N", "SING", "PLUR", "NP", "VP", "TR", "S"},
		Rules: []string{
			"DET ==> N-N+NP",
			"NP ==> VP-VP+S",
			"TR-TR+VP <== NP",
		},
		Lexicon: map[string]string{
			"the":         "DET",
			"some":        "DET",
			"no":          "DET",
			"all":         "DET",
			"dog":         "N|SING",
			"dogs":        "NP|N|PLUR",
			"pets":        "NP|N|PLUR",
			"sweethearts": "NP|N|PLUR",
			"food":        "N|NP",
			"eats":        "VP|TR",
			"are":         "TR|SING",
			"_X":          "NP|N|PLUR",
			"_Y":          "NP|N|PLUR",
		},
		Root: "S",
	}
}

func toyGrammar(t *testing.T, mutate func(*Data)) *Grammar {
	t.Helper()
	d := toyData()
	if mutate != nil {
		mutate(&d)
	}
	g, err := FromData(d)
	require.NoError(t, err)
	return g
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, nil)

	tests := []struct {
		sentence string
		want     string
	}{
		{"all dogs are pets", "S [NP [DET all N dogs] VP [TR are NP pets]]"},
		{"the dogs are the pets", "S [NP [DET the N dogs] VP [TR are NP [DET the N pets]]]"},
		{"the dog eats food", "S [NP [DET the N dog] VP [TR eats NP food]]"},
		{"some _X are _Y", "S [NP [DET some N _X] VP [TR are NP _Y]]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.sentence, func(t *testing.T) {
			t.Parallel()
			trees, err := g.ParseSentence(tt.sentence)
			require.NoError(t, err)
			require.Len(t, trees, 1)
			assert.Equal(t, tt.want, tree.Render(g.Vocabulary(), trees[0]))
			assert.Equal(t, Tokenize(tt.sentence), tree.Flatten(trees[0]))
		})
	}
}

func TestParseVariables(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, nil)

	trees, err := g.ParseSentence("all _X are _Y")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Equal(t, []string{"_X", "_Y"}, tree.Variables(trees[0]))
	assert.Equal(t, "all are", tree.Text(trees[0]))
}

func TestParseAmbiguous(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, func(d *Data) {
		d.Rules = append(d.Rules, "DET ==> NP-N+NP")
	})

	tokens := Tokenize("all dogs are pets")
	trees, err := g.Parse(tokens)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(trees), 2)

	distinct := make(map[string]bool)
	for _, tr := range trees {
		assert.Equal(t, tokens, tree.Flatten(tr))
		distinct[tree.Render(g.Vocabulary(), tr)] = true
	}
	assert.Equal(t, map[string]bool{
		"S [NP [DET all N dogs] VP [TR are NP pets]]":  true,
		"S [NP [DET all NP dogs] VP [TR are NP pets]]": true,
	}, distinct)
}

func TestParseExactRootAcceptance(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, func(d *Data) {
		d.Rules[1] = "NP ==> VP-VP+S|PLUR"
	})

	tokens := Tokenize("all dogs are pets")
	chart, err := g.BuildChart(tokens)
	require.NoError(t, err)

	top := chart.Cell(0, len(tokens)-1)
	require.NotEmpty(t, top)
	superset := false
	for _, e := range top {
		if e.Category != g.Root() && feature.Subset(g.Root(), e.Category) {
			superset = true
		}
	}
	require.True(t, superset, "chart should hold a strict superset of the root")

	trees, err := g.Parse(tokens)
	require.NoError(t, err)
	assert.Empty(t, trees)
}

func TestParseNoDerivation(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, nil)

	trees, err := g.ParseSentence("dogs all pets are")
	require.NoError(t, err)
	assert.Empty(t, trees)

	trees, err = g.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, trees)
}

func TestParseUnknownToken(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, nil)

	_, err := g.ParseSentence("all cats are pets")
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestBuildChartKeepsDuplicates(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, func(d *Data) {
		d.Rules = append(d.Rules, "DET ==> N-N+NP")
	})

	chart, err := g.BuildChart(Tokenize("all dogs"))
	require.NoError(t, err)

	cell := chart.Cell(0, 1)
	require.Len(t, cell, 2)
	assert.Equal(t, cell[0].Category, cell[1].Category)
	assert.NotSame(t, cell[0].Rule, cell[1].Rule)
	assert.True(t, chart.Cell(0, 0)[0].IsLeaf())
	assert.Nil(t, chart.Cell(1, 0))
}

func TestFromDataErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Data)
		want   error
	}{
		{"malformed rule", func(d *Data) { d.Rules = append(d.Rules, "DET -> N") }, ErrMalformedRule},
		{"unknown property in rule", func(d *Data) { d.Rules = append(d.Rules, "ADJ ==> N-N+NP") }, feature.ErrUnknownProperty},
		{"unknown property in lexicon", func(d *Data) { d.Lexicon["big"] = "ADJ" }, feature.ErrUnknownProperty},
		{"unknown root", func(d *Data) { d.Root = "SENTENCE" }, feature.ErrUnknownProperty},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := toyData()
			tt.mutate(&d)
			_, err := FromData(d)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLexicon(t *testing.T) {
	t.Parallel()
	g := toyGrammar(t, nil)

	s, err := g.Lexicon().Lookup("dogs")
	require.NoError(t, err)
	assert.Equal(t, "N|PLUR|NP", g.Vocabulary().Format(s))

	toks := g.Lexicon().Tokens()
	assert.Equal(t, g.Lexicon().Len(), len(toks))
	assert.True(t, strings.HasPrefix(toks[0], "_"), "sorted tokens start with variables")
}
