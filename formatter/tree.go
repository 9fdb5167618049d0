package formatter

import (
	"strings"

	"github.com/gnolang/natlog/internal/feature"
	"github.com/gnolang/natlog/internal/proof"
	"github.com/gnolang/natlog/internal/tree"
)

const indentWidth = 2

// FormatTree renders t one node per line, children indented under their
// parent:
//
//	S
//	  NP
//	    DET all
//	    N dogs
func FormatTree(vocab *feature.Vocabulary, t tree.Tree) string {
	var builder strings.Builder
	writeTree(&builder, vocab, t, 0)
	return builder.String()
}

func writeTree(b *strings.Builder, vocab *feature.Vocabulary, t tree.Tree, depth int) {
	b.WriteString(strings.Repeat(" ", depth*indentWidth))
	b.WriteString(nameStyle.Sprint(vocab.Format(t.Category())))
	switch x := t.(type) {
	case *tree.Node:
		b.WriteString("\n")
		writeTree(b, vocab, x.Left, depth+1)
		writeTree(b, vocab, x.Right, depth+1)
	case *tree.Terminal:
		b.WriteString(" " + x.Token + "\n")
	case *tree.Variable:
		b.WriteString(" " + fileStyle.Sprint(x.Name) + "\n")
	}
}

// FormatRule renders a proof rule with its inputs above a separator and its
// outputs below.
func FormatRule(r *proof.Rule) string {
	var builder strings.Builder
	builder.WriteString(nameStyle.Sprint(r.Name))
	builder.WriteString("\n")
	for _, in := range r.Inputs {
		builder.WriteString("    " + strings.Join(tree.Flatten(in), " ") + "\n")
	}
	builder.WriteString(lineStyle.Sprint("    ----"))
	builder.WriteString("\n")
	for _, out := range r.Outputs {
		builder.WriteString("    " + strings.Join(tree.Flatten(out), " ") + "\n")
	}
	return builder.String()
}
