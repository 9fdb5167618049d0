package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/natlog/internal/feature"
)

func testVocab(t *testing.T) *feature.Vocabulary {
	t.Helper()
	v, err := feature.NewVocabulary([]string{"DET", "N", "NP", "VP", "TR", "S"})
	require.NoError(t, err)
	return v
}

func cat(t *testing.T, v *feature.Vocabulary, s string) feature.Set {
	t.Helper()
	set, err := v.Parse(s)
	require.NoError(t, err)
	return set
}

// all dogs are _Y
func sample(t *testing.T, v *feature.Vocabulary) Tree {
	return &Node{
		Top: cat(t, v, "S"),
		Left: &Node{
			Top:   cat(t, v, "NP"),
			Left:  &Terminal{Top: cat(t, v, "DET"), Token: "all"},
			Right: &Terminal{Top: cat(t, v, "N"), Token: "dogs"},
		},
		Right: &Node{
			Top:   cat(t, v, "VP"),
			Left:  &Terminal{Top: cat(t, v, "TR"), Token: "are"},
			Right: &Variable{Top: cat(t, v, "NP"), Name: "_Y"},
		},
	}
}

func TestRender(t *testing.T) {
	t.Parallel()
	v := testVocab(t)
	assert.Equal(t, "S [NP [DET all N dogs] VP [TR are NP _Y]]", Render(v, sample(t, v)))
}

func TestFlattenAndText(t *testing.T) {
	t.Parallel()
	v := testVocab(t)
	tr := sample(t, v)

	assert.Equal(t, []string{"all", "dogs", "are", "_Y"}, Flatten(tr))
	assert.Equal(t, "all dogs are", Text(tr))
	assert.Equal(t, []string{"_Y"}, Variables(tr))
}

func TestEqual(t *testing.T) {
	t.Parallel()
	v := testVocab(t)

	a := sample(t, v)
	b := Clone(a)
	assert.True(t, Equal(a, b))
	assert.NotSame(t, a, b)

	b.(*Node).Right.(*Node).Right = &Terminal{Top: cat(t, v, "NP"), Token: "_Y"}
	assert.False(t, Equal(a, b), "variable and terminal with the same text differ")

	c := Clone(a)
	c.(*Node).Left.(*Node).Top = cat(t, v, "NP|N")
	assert.False(t, Equal(a, c), "categories are compared")

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestNewLeaf(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &Variable{}, NewLeaf(0, "_X"))
	assert.IsType(t, &Terminal{}, NewLeaf(0, "dogs"))
	assert.IsType(t, &Terminal{}, NewLeaf(0, "_"), "bare prefix is not a variable")
}

func TestBuild(t *testing.T) {
	t.Parallel()
	v := testVocab(t)

	spec := &Spec{
		Category: "S",
		Left: &Spec{
			Category: "NP",
			Left:     &Spec{Category: "DET", Token: "all"},
			Right:    &Spec{Category: "N", Token: "dogs"},
		},
		Right: &Spec{
			Category: "VP",
			Left:     &Spec{Category: "TR", Token: "are"},
			Right:    &Spec{Category: "NP", Token: "_Y"},
		},
	}
	got, err := Build(v, spec)
	require.NoError(t, err)
	assert.True(t, Equal(sample(t, v), got))
}

func TestBuildInvalid(t *testing.T) {
	t.Parallel()
	v := testVocab(t)

	tests := []struct {
		name string
		spec *Spec
		want error
	}{
		{name: "nil", spec: nil, want: ErrInvalidSpec},
		{name: "one child", spec: &Spec{Category: "S", Left: &Spec{Category: "N", Token: "x"}}, want: ErrInvalidSpec},
		{
			name: "token and children",
			spec: &Spec{Category: "S", Token: "x", Left: &Spec{Category: "N", Token: "x"}, Right: &Spec{Category: "N", Token: "y"}},
			want: ErrInvalidSpec,
		},
		{name: "unknown category", spec: &Spec{Category: "ADJ", Token: "big"}, want: feature.ErrUnknownProperty},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(v, tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
