// Package check is the public entry point for checking proof files.
package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/natlog/internal"
	"github.com/gnolang/natlog/internal/config"
	tt "github.com/gnolang/natlog/internal/types"
	"github.com/gnolang/natlog/scanner"
)

type ProofEngine interface {
	Run(filePath string) ([]tt.ProofReport, error)
	RunSource(source []byte) ([]tt.ProofReport, error)
}

// New loads the configuration at configPath and builds an engine for it.
// An empty configPath selects .natlog.yaml in the working directory when
// present, and the embedded default otherwise. checkCategory forces category-aware
// matching even when the configuration leaves it off.
func New(configPath string, checkCategory bool, logger *zap.Logger) (*internal.Engine, error) {
	cfg, err := config.Load(config.Resolve(configPath, "."))
	if err != nil {
		return nil, err
	}
	if checkCategory {
		cfg.CheckCategory = true
	}

	lib, err := config.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("error building configuration: %w", err)
	}
	return internal.NewEngine(lib, logger), nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine ProofEngine,
	sources [][]byte,
	processor func(ProofEngine, []byte) ([]tt.ProofReport, error),
) ([]tt.ProofReport, error) {
	var all []tt.ProofReport
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		reports, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, reports...)
	}

	return all, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine ProofEngine,
	paths []string,
	processor func(ProofEngine, string) ([]tt.ProofReport, error),
) ([]tt.ProofReport, error) {
	var all []tt.ProofReport
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, reports...)
	}

	return all, nil
}

// ProcessPath checks a single proof file, or every proof file below a
// directory. Files in a directory are checked concurrently; reports keep
// the walk order. A file that fails to load yields a single failed report
// carrying the load error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine ProofEngine,
	path string,
	processor func(ProofEngine, string) ([]tt.ProofReport, error),
) ([]tt.ProofReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.IsProofFile(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}

	progress := io.Writer(os.Stderr)
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make([][]tt.ProofReport, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, fp := range files {
		i, fp := i, fp
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			defer bar.Add(1)

			reports, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				results[i] = []tt.ProofReport{{File: fp, Name: filepath.Base(fp), Err: err.Error()}}
				return nil
			}
			results[i] = reports
			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	reports := make([]tt.ProofReport, 0, len(files))
	for _, r := range results {
		reports = append(reports, r...)
	}
	return reports, err
}

func collectFiles(root string) ([]string, error) {
	files, err := scanner.New(root, scanner.ProofExtensions...).Paths()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

func ProcessFile(engine ProofEngine, filePath string) ([]tt.ProofReport, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine ProofEngine, source []byte) ([]tt.ProofReport, error) {
	return engine.RunSource(source)
}
