package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/natlog/check"
	"github.com/gnolang/natlog/formatter"
	"github.com/gnolang/natlog/internal"
	"github.com/gnolang/natlog/internal/tree"
)

var showTree bool

var parseCmd = &cobra.Command{
	Use:   "parse [sentence...]",
	Short: "Print every parse of each sentence",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := check.New(cfgFile, checkCategory, logger)
		if err != nil {
			logger.Fatal("Failed to initialize proof engine", zap.Error(err))
		}
		if !runParse(engine, args, os.Stdout, showTree) {
			os.Exit(1)
		}
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&showTree, "tree", "t", false, "Print an indented tree instead of the bracketed form")
}

// runParse prints the parses of every sentence. It returns false when a
// sentence fails to tokenize or has no parse.
func runParse(engine *internal.Engine, sentences []string, w io.Writer, indented bool) bool {
	vocab := engine.Library().Grammar.Vocabulary()
	ok := true
	for _, s := range sentences {
		trees, err := engine.Parse(s)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", s, err)
			ok = false
			continue
		}

		fmt.Fprintf(w, "%s: %d parse(s)\n", s, len(trees))
		if len(trees) == 0 {
			ok = false
		}
		for _, t := range trees {
			if indented {
				fmt.Fprint(w, formatter.FormatTree(vocab, t))
				continue
			}
			fmt.Fprintf(w, "  %s\n", tree.Render(vocab, t))
		}
	}
	return ok
}
