package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestScanner(t *testing.T, run RunFunc, workers int) *Scanner {
	t.Helper()

	s, err := NewScanner(run, workers, nil)
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	return s
}

func touchFeed(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("header\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanDirectoryCollectsEveryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchFeed(t, dir, "a.csv")
	touchFeed(t, dir, "b.csv")
	touchFeed(t, dir, "c.txt")

	var (
		mu   sync.Mutex
		seen []string
	)
	run := func(ctx context.Context, path string) (Summary, error) {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		return Summary{Status: StatusAllSucceeded, TotalAttempted: 1, Successful: 1}, nil
	}

	results, err := newTestScanner(t, run, 2).ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if len(seen) != 3 {
		t.Fatalf("files processed = %d, want 3", len(seen))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: unexpected error %v", res.File, res.Err)
		}
		if res.Summary.Status != StatusAllSucceeded {
			t.Errorf("%s: status = %s", res.File, res.Summary.Status)
		}
	}
}

func TestScanDirectoryMovesFilesByOutcome(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchFeed(t, dir, "clean.csv")
	touchFeed(t, dir, "dirty.csv")
	touchFeed(t, dir, "broken.csv")
	touchFeed(t, dir, "blank.csv")

	run := func(ctx context.Context, path string) (Summary, error) {
		switch filepath.Base(path) {
		case "clean.csv":
			return Summary{Status: StatusAllSucceeded, TotalAttempted: 2, Successful: 2}, nil
		case "dirty.csv":
			return Summary{
				Status:         StatusPartialSuccess,
				TotalAttempted: 2,
				Successful:     1,
				Failures:       []string{"Line 2: Incomplete set of data. Expected 8 fields, got 5. Skipping record."},
			}, nil
		case "blank.csv":
			return Summary{Status: StatusEmpty, Message: "no records found"}, nil
		default:
			return Summary{}, errors.New("boom")
		}
	}

	results, err := newTestScanner(t, run, 4).ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}

	assertMoved := func(sub, name string) {
		t.Helper()
		if _, err := os.Stat(filepath.Join(dir, sub, name)); err != nil {
			t.Errorf("%s not found under %s/: %v", name, sub, err)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still present in scan directory", name)
		}
	}

	assertMoved(processedDirName, "clean.csv")
	assertMoved(processedDirName, "blank.csv")
	assertMoved(errorDirName, "dirty.csv")
	assertMoved(errorDirName, "broken.csv")
}

func TestScanDirectorySkipsNonFeedEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchFeed(t, dir, "feed.csv")
	touchFeed(t, dir, "notes.md")
	touchFeed(t, dir, "feed.csv.bak")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	touchFeed(t, filepath.Join(dir, "nested"), "hidden.csv")

	var (
		mu   sync.Mutex
		seen []string
	)
	run := func(ctx context.Context, path string) (Summary, error) {
		mu.Lock()
		seen = append(seen, filepath.Base(path))
		mu.Unlock()
		return Summary{Status: StatusAllSucceeded}, nil
	}

	results, err := newTestScanner(t, run, 1).ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if len(seen) != 1 || seen[0] != "feed.csv" {
		t.Fatalf("processed = %v, want only feed.csv", seen)
	}
}

func TestScanDirectoryEmpty(t *testing.T) {
	t.Parallel()

	run := func(ctx context.Context, path string) (Summary, error) {
		t.Error("run must not be called for an empty directory")
		return Summary{}, nil
	}

	results, err := newTestScanner(t, run, 2).ScanDirectory(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if results != nil {
		t.Fatalf("results = %v, want nil", results)
	}
}

func TestScanDirectoryMissingDir(t *testing.T) {
	t.Parallel()

	run := func(ctx context.Context, path string) (Summary, error) { return Summary{}, nil }

	if _, err := newTestScanner(t, run, 1).ScanDirectory(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScanDirectoryRunErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touchFeed(t, dir, "first.csv")
	touchFeed(t, dir, "second.csv")

	run := func(ctx context.Context, path string) (Summary, error) {
		if filepath.Base(path) == "first.csv" {
			return Summary{}, errors.New("connection refused")
		}
		return Summary{Status: StatusAllSucceeded, TotalAttempted: 1, Successful: 1}, nil
	}

	results, err := newTestScanner(t, run, 1).ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	var failed, succeeded int
	for _, res := range results {
		if res.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Fatalf("failed = %d, succeeded = %d, want 1 and 1", failed, succeeded)
	}
}
