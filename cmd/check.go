package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/natlog/check"
	"github.com/gnolang/natlog/formatter"
	tt "github.com/gnolang/natlog/internal/types"
)

var (
	checkJsonOutput bool
	outPath         string
	watchMode       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check the proofs in the given files or directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		engine, err := check.New(cfgFile, checkCategory, logger)
		if err != nil {
			logger.Fatal("Failed to initialize proof engine", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		valid, err := runCheck(ctx, logger, engine, args, os.Stdout, checkJsonOutput, outPath)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		if watchMode {
			if err := watch(engine, args); err != nil {
				logger.Error("Error watching files", zap.Error(err))
				os.Exit(1)
			}
			return
		}

		if !valid {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output reports in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-check proof files when they change")
}

// runCheck checks every path and prints the reports. It returns whether
// every proof was valid.
func runCheck(
	ctx context.Context,
	logger *zap.Logger,
	engine check.ProofEngine,
	paths []string,
	w io.Writer,
	isJson bool,
	jsonOutput string,
) (bool, error) {
	reports, err := check.ProcessFiles(ctx, logger, engine, paths, check.ProcessFile)
	if err != nil {
		return false, err
	}

	if err := printReports(reports, w, isJson, jsonOutput); err != nil {
		return false, err
	}

	for _, r := range reports {
		if !r.Valid() {
			return false, nil
		}
	}
	return true, nil
}

func printReports(reports []tt.ProofReport, w io.Writer, isJson bool, jsonOutput string) error {
	if !isJson {
		fmt.Fprint(w, formatter.FormatProofs(reports))
		for _, r := range reports {
			fmt.Fprintln(w, formatter.Summary(r))
		}
		return nil
	}

	reportsByFile := make(map[string][]tt.ProofReport)
	for _, r := range reports {
		reportsByFile[r.File] = append(reportsByFile[r.File], r)
	}
	d, err := json.Marshal(reportsByFile)
	if err != nil {
		return fmt.Errorf("error marshalling reports to JSON: %w", err)
	}

	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}

type watchEngine interface {
	StartWatching(dirs []string, report func(string, []tt.ProofReport)) error
	StopWatching() error
}

func watch(engine watchEngine, paths []string) error {
	dirs := watchDirs(paths)
	err := engine.StartWatching(dirs, func(filename string, reports []tt.ProofReport) {
		fmt.Printf("\n%s changed\n", filename)
		if err := printReports(reports, os.Stdout, false, ""); err != nil {
			logger.Error("Error printing reports", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	defer engine.StopWatching()

	fmt.Printf("watching %d directories, press Ctrl+C to stop\n", len(dirs))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

// watchDirs maps paths to the directories to watch, without duplicates.
func watchDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := p
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			dir = filepath.Dir(p)
		}
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
