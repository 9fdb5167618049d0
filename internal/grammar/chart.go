package grammar

import (
	"github.com/gnolang/natlog/internal/feature"
	"github.com/gnolang/natlog/internal/tree"
)

// Entry is one derivation recorded in a chart cell. A nil Rule marks a leaf
// seeded from the lexicon; Split is then the token position.
type Entry struct {
	Category feature.Set
	Rule     *Rule
	Split    int
}

// IsLeaf reports whether e was seeded from the lexicon.
func (e Entry) IsLeaf() bool { return e.Rule == nil }

// Chart is a CYK chart over a token sequence. Cell (start, end) holds every
// derivation found for tokens[start..end], duplicates included.
type Chart struct {
	tokens []string
	cells  [][][]Entry
}

func newChart(tokens []string) *Chart {
	n := len(tokens)
	cells := make([][][]Entry, n)
	for i := range cells {
		cells[i] = make([][]Entry, n)
	}
	return &Chart{tokens: tokens, cells: cells}
}

// Len returns the number of tokens.
func (c *Chart) Len() int { return len(c.tokens) }

// Cell returns the entries for span [start, end]. Out of range spans are empty.
func (c *Chart) Cell(start, end int) []Entry {
	if start < 0 || end >= len(c.tokens) || start > end {
		return nil
	}
	return c.cells[start][end]
}

func (c *Chart) add(start, end int, e Entry) {
	c.cells[start][end] = append(c.cells[start][end], e)
}

// BuildChart fills the chart for tokens bottom-up. Entries accumulate and
// are never pruned, so every ambiguity is kept.
func (g *Grammar) BuildChart(tokens []string) (*Chart, error) {
	chart := newChart(tokens)
	for i, tok := range tokens {
		cat, err := g.lexicon.Lookup(tok)
		if err != nil {
			return nil, err
		}
		chart.add(i, i, Entry{Category: cat, Split: i})
	}

	n := len(tokens)
	for width := 1; width < n; width++ {
		for start := 0; start+width < n; start++ {
			end := start + width
			for split := start; split < end; split++ {
				g.combine(chart, start, split, end)
			}
		}
	}
	return chart, nil
}

func (g *Grammar) combine(chart *Chart, start, split, end int) {
	lefts := chart.Cell(start, split)
	rights := chart.Cell(split+1, end)
	for _, l := range lefts {
		for _, r := range g.rules {
			if !feature.Subset(r.Left, l.Category) {
				continue
			}
			for _, rt := range rights {
				if feature.Subset(r.Right, rt.Category) {
					chart.add(start, end, Entry{Category: r.Top(), Rule: r, Split: split})
				}
			}
		}
	}
}

// Reconstruct returns every tree for a derivation of category over
// [start, end] produced by rule at split. Children are labelled with the
// requirement through which the rule reached them, so features a child
// carried beyond the requirement do not appear in the tree.
//
// Left alternatives vary slowest, right alternatives fastest.
func (c *Chart) Reconstruct(category feature.Set, rule *Rule, start, split, end int) []tree.Tree {
	if rule == nil {
		return []tree.Tree{tree.NewLeaf(category, c.tokens[split])}
	}

	var trees []tree.Tree
	for _, l := range c.Cell(start, split) {
		if !feature.Subset(rule.Left, l.Category) {
			continue
		}
		leftTrees := c.Reconstruct(rule.Left, l.Rule, start, l.Split, split)
		for _, r := range c.Cell(split+1, end) {
			if !feature.Subset(rule.Right, r.Category) {
				continue
			}
			rightTrees := c.Reconstruct(rule.Right, r.Rule, split+1, r.Split, end)
			for _, lt := range leftTrees {
				for _, rt := range rightTrees {
					trees = append(trees, &tree.Node{
						Top:   category,
						Left:  tree.Clone(lt),
						Right: tree.Clone(rt),
					})
				}
			}
		}
	}
	return trees
}
