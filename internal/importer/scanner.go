package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	processedDirName = "processed"
	errorDirName     = "error"
)

var feedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
}

// FileResult pairs one scanned file with its batch outcome. Err is set only
// when the batch could not run at all.
type FileResult struct {
	File    string
	Summary Summary
	Err     error
}

// RunFunc executes one full, independent batch for one file.
type RunFunc func(ctx context.Context, path string) (Summary, error)

// Scanner fans independent feed files out over a fixed-size worker pool.
// Each worker runs one complete batch pipeline with its own transaction;
// workers share only the result collection.
type Scanner struct {
	run     RunFunc
	workers int
	logger  *zap.Logger
}

func NewScanner(run RunFunc, workers int, logger *zap.Logger) (*Scanner, error) {
	if run == nil {
		return nil, fmt.Errorf("run function is required")
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{run: run, workers: workers, logger: logger}, nil
}

// ScanDirectory processes every feed file directly under dir and moves each
// to processed/ or error/ by outcome. Result order across files is not
// guaranteed.
func (s *Scanner) ScanDirectory(ctx context.Context, dir string) ([]FileResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !feedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, nil
	}

	for _, sub := range []string{processedDirName, errorDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare %s directory: %w", sub, err)
		}
	}

	var (
		mu      sync.Mutex
		results []FileResult
	)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, path := range files {
		path := path
		g.Go(func() error {
			s.logger.Info("processing feed file", zap.String("file", path))

			summary, runErr := s.run(groupCtx, path)
			result := FileResult{File: path, Summary: summary, Err: runErr}

			dest := processedDirName
			if runErr != nil || summary.Status == StatusAllFailed || summary.Status == StatusPartialSuccess {
				dest = errorDirName
			}
			if err := s.moveFile(dir, path, dest); err != nil {
				s.logger.Error("failed to move feed file",
					zap.String("file", path),
					zap.String("dest", dest),
					zap.Error(err),
				)
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; per-file failures live in the results.
	_ = g.Wait()

	return results, nil
}

func (s *Scanner) moveFile(dir, path, sub string) error {
	return os.Rename(path, filepath.Join(dir, sub, filepath.Base(path)))
}
