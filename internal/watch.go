package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/natlog/internal/types"
	"github.com/gnolang/natlog/scanner"
)

// debounce lets an editor finish writing before the file is re-checked.
const debounce = 100 * time.Millisecond

// StartWatching re-checks proof files under dirs whenever they are written
// and hands the reports to report.
func (e *Engine) StartWatching(dirs []string, report func(filename string, reports []tt.ProofReport)) error {
	if e.watcher != nil {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.watchDirs = dirs
	e.onReport = report
	e.done = make(chan struct{})
	go e.watchLoop(watcher, e.done)
	return nil
}

// StopWatching stops the watcher started by StartWatching.
func (e *Engine) StopWatching() error {
	if e.watcher == nil {
		e.logger.Warn("not watching")
		return nil
	}

	close(e.done)
	err := e.watcher.Close()
	e.watcher = nil
	return err
}

func (e *Engine) watchLoop(w *fsnotify.Watcher, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !IsProofFile(event.Name) {
		return
	}

	time.Sleep(debounce)
	reports, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error checking file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	if e.onReport != nil {
		e.onReport(event.Name, reports)
	}
}

var proofFiles = scanner.New("", scanner.ProofExtensions...)

// IsProofFile reports whether path has a proof file extension.
func IsProofFile(path string) bool {
	return proofFiles.IsTarget(path)
}
