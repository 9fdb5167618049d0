package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gnolang/natlog/internal/config"
	"github.com/gnolang/natlog/internal/proof"
	"github.com/gnolang/natlog/internal/tree"
	tt "github.com/gnolang/natlog/internal/types"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	lib, err := config.Build(cfg)
	require.NoError(t, err)
	return NewEngine(lib, zaptest.NewLogger(t))
}

const deterministicProof = `
proofs:
  - name: deterministic
    logic: all-and-some
    premises:
      - all dogs are pets
      - some dogs are dogs
      - all dogs are sweethearts
    steps:
      - some dogs are pets
      - some pets are dogs
      - some pets are sweethearts
`

func TestEngine_RunSource(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	reports, err := e.RunSource([]byte(deterministicProof))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Empty(t, r.Err)
	assert.True(t, r.Valid())
	assert.Equal(t, 0, r.Unjustified())
	assert.Equal(t, []tt.StepResult{
		{Index: 3, Sentence: "some dogs are pets", Justified: true, Premises: []int{0, 1}, Rule: "application of all to some"},
		{Index: 4, Sentence: "some pets are dogs", Justified: true, Premises: []int{3}, Rule: "reflexivity of some"},
		{Index: 5, Sentence: "some pets are sweethearts", Justified: true, Premises: []int{2, 4}, Rule: "application of all to some"},
	}, r.Steps)
}

func TestEngine_UnjustifiedStep(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	reports, err := e.RunSource([]byte(`
proofs:
  - premises: [all dogs are pets, some dogs are dogs]
    steps:
      - some pets are food
      - some dogs are pets
`))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "proof 1", r.Name)
	assert.False(t, r.Valid())
	assert.Equal(t, 1, r.Unjustified())

	require.Len(t, r.Steps, 2)
	assert.False(t, r.Steps[0].Justified)
	assert.Equal(t, -1, r.Steps[0].Index)
	assert.True(t, r.Steps[1].Justified)
	assert.Equal(t, 2, r.Steps[1].Index)
	assert.Equal(t, []int{0, 1}, r.Steps[1].Premises)
}

func TestEngine_CheckErrors(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	tests := []struct {
		name  string
		proof Proof
		want  string
	}{
		{
			name:  "unknown logic",
			proof: Proof{Name: "p", Logic: "modal", Steps: []string{"all dogs are dogs"}},
			want:  "unknown logic",
		},
		{
			name:  "unknown token",
			proof: Proof{Name: "p", Premises: []string{"all cats are pets"}},
			want:  "premise 1",
		},
		{
			name:  "no parse",
			proof: Proof{Name: "p", Steps: []string{"dogs all are pets"}},
			want:  "sentence has no parse",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := e.Check(tc.proof)
			assert.False(t, r.Valid())
			assert.Contains(t, r.Err, tc.want)
			assert.Empty(t, r.Steps)
		})
	}
}

func TestEngine_ParseCache(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	first, err := e.Parse("all dogs are pets")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := e.Parse("  all dogs   are pets ")
	require.NoError(t, err)
	assert.Same(t, first[0], second[0])
	assert.Equal(t, 1, e.parses.Len())

	_, err = e.Parse("all cats are pets")
	assert.Error(t, err)
	assert.Equal(t, 1, e.parses.Len())
}

func TestEngine_ParseConcurrent(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	const workers = 16
	results := make([][]tree.Tree, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trees, err := e.Parse("some dogs are pets")
			assert.NoError(t, err)
			results[i] = trees
		}(i)
	}
	wg.Wait()

	require.Len(t, results[0], 1)
	for _, r := range results[1:] {
		require.Len(t, r, 1)
		assert.Same(t, results[0][0], r[0])
	}
	assert.Equal(t, 1, e.parses.Len())
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "proofs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(deterministicProof), 0o644))

	reports, err := e.Run(path)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, path, reports[0].File)
	assert.True(t, reports[0].Valid())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("proofs: {"), 0o644))
	_, err = e.Run(bad)
	assert.ErrorContains(t, err, "bad.yaml")

	_, err = e.Run(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEngine_Watch(t *testing.T) {
	dir := t.TempDir()
	e := newTestEngine(t)

	got := make(chan []tt.ProofReport, 16)
	require.NoError(t, e.StartWatching([]string{dir}, func(_ string, reports []tt.ProofReport) {
		got <- reports
	}))
	t.Cleanup(func() { _ = e.StopWatching() })

	assert.Error(t, e.StartWatching([]string{dir}, nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proofs.yaml"), []byte(deterministicProof), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case reports := <-got:
			if len(reports) == 0 {
				continue
			}
			assert.Equal(t, "deterministic", reports[0].Name)
			assert.True(t, reports[0].Valid())
			return
		case <-timeout:
			t.Fatal("no report received from watcher")
		}
	}
}

func TestIsProofFile(t *testing.T) {
	t.Parallel()
	assert.True(t, IsProofFile("a/b.yaml"))
	assert.True(t, IsProofFile("b.YML"))
	assert.False(t, IsProofFile("b.go"))
	assert.False(t, IsProofFile("yaml"))
}

func TestEngine_Derive(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	idx, out, err := e.Derive("transitivity of all", []string{"some dogs are dogs", "all dogs are pets", "all pets are sweethearts"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, idx)
	require.Len(t, out, 1)
	assert.Equal(t, "all dogs are sweethearts", tree.Text(out[0]))

	_, _, err = e.Derive("modus ponens", nil)
	assert.ErrorIs(t, err, config.ErrUnknownProofRule)

	_, _, err = e.Derive("reflexivity of some", []string{"some cats are dogs"})
	assert.ErrorContains(t, err, "fact 1")

	_, _, err = e.Derive("reflexivity of some", []string{"all dogs are pets"})
	assert.ErrorIs(t, err, proof.ErrNoMatch)
}
