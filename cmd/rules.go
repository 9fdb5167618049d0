package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/natlog/check"
	"github.com/gnolang/natlog/formatter"
	"github.com/gnolang/natlog/internal"
	"github.com/gnolang/natlog/internal/tree"
)

var (
	applyRule string
	facts     []string
)

var rulesCmd = &cobra.Command{
	Use:   "rules [logic]",
	Short: "List the grammar and the proof rules of a logic",
	Long: `Lists the grammar rules and the proof rules of the given logic (every rule when omitted).
With --apply, applies one proof rule forward to the given facts.
Example) natlog rules --apply "transitivity of all" --fact "all dogs are pets" --fact "all pets are sweethearts"`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := check.New(cfgFile, checkCategory, logger)
		if err != nil {
			logger.Fatal("Failed to initialize proof engine", zap.Error(err))
		}

		if applyRule != "" {
			err = runApply(engine, applyRule, facts, os.Stdout)
		} else {
			logic := ""
			if len(args) == 1 {
				logic = args[0]
			}
			err = runRules(engine, logic, os.Stdout)
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rulesCmd.Flags().StringVar(&applyRule, "apply", "", "Proof rule to apply forward")
	rulesCmd.Flags().StringArrayVar(&facts, "fact", nil, "Fact sentence for --apply (repeatable)")
}

func runRules(engine *internal.Engine, logic string, w io.Writer) error {
	lib := engine.Library()
	rules, err := lib.Logic(logic)
	if err != nil {
		return err
	}
	vocab := lib.Grammar.Vocabulary()

	fmt.Fprintf(w, "grammar %s (root %s)\n", lib.Name, lib.Grammar.RootName())
	for _, r := range lib.Grammar.Rules() {
		fmt.Fprintf(w, "  %s\n", r.Format(vocab))
	}
	if names := lib.LogicNames(); len(names) > 0 {
		fmt.Fprintf(w, "logics: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintln(w)
	for _, r := range rules {
		fmt.Fprint(w, formatter.FormatRule(r))
	}
	return nil
}

func runApply(engine *internal.Engine, rule string, facts []string, w io.Writer) error {
	idx, out, err := engine.Derive(rule, facts)
	if err != nil {
		return err
	}

	cites := make([]string, len(idx))
	for i, n := range idx {
		cites[i] = fmt.Sprintf("%d", n+1)
	}
	for _, t := range out {
		fmt.Fprintf(w, "%s, %s %s\n", strings.Join(tree.Flatten(t), " "), strings.Join(cites, ", "), rule)
	}
	return nil
}
