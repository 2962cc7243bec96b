// Package fileproc runs per-file analysis functions concurrently. Parsers
// are not safe for concurrent use, so each worker gets its own instance.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bgaffney/scalpel/pkg/parser"
	"github.com/sourcegraph/conc/pool"
)

// WorkerMultiplier is applied to NumCPU to size the pool. Parsing mixes
// file I/O with CGO calls, which keeps cores underfed at 1x.
const WorkerMultiplier = 2

// FileError is a failure tied to one input file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// FileErrors accumulates per-file failures across workers.
type FileErrors struct {
	mu   sync.Mutex
	errs []FileError
}

// Add records a failure. Safe for concurrent use.
func (e *FileErrors) Add(path string, err error) {
	e.mu.Lock()
	e.errs = append(e.errs, FileError{Path: path, Err: err})
	e.mu.Unlock()
}

// All returns the recorded failures.
func (e *FileErrors) All() []FileError {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs
}

// Empty reports whether no failures were recorded.
func (e *FileErrors) Empty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) == 0
}

func (e *FileErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return "no errors"
	case 1:
		return e.errs[0].Error()
	default:
		return fmt.Sprintf("%d files failed (first: %v)", len(e.errs), e.errs[0])
	}
}

// ProgressFunc is invoked once per file after it finishes, success or not.
type ProgressFunc func()

func workerCount(max int) int {
	if max > 0 {
		return max
	}
	return runtime.NumCPU() * WorkerMultiplier
}

// MapCtx runs fn over every file, honoring context cancellation between
// files. Each worker goroutine builds one parser and reuses it for every
// file it takes off the queue. maxWorkers <= 0 selects the default pool
// size. Results come back in arbitrary order; failed files are recorded in
// the returned FileErrors, which is nil when everything succeeded.
// Cancellation is recorded per remaining file rather than aborting
// collected results.
func MapCtx[T any](ctx context.Context, files []string, maxWorkers int, fn func(*parser.Parser, string) (T, error), onProgress ProgressFunc) ([]T, *FileErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	workers := workerCount(maxWorkers)
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]T, 0, len(files))
	errs := &FileErrors{}
	var mu sync.Mutex
	jobs := make(chan string)

	p := pool.New()
	for range workers {
		p.Go(func() {
			psr := parser.New()
			defer psr.Close()

			for path := range jobs {
				if err := ctx.Err(); err != nil {
					errs.Add(path, err)
				} else if result, err := fn(psr, path); err != nil {
					errs.Add(path, err)
				} else {
					mu.Lock()
					results = append(results, result)
					mu.Unlock()
				}
				if onProgress != nil {
					onProgress()
				}
			}
		})
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	p.Wait()

	if errs.Empty() {
		return results, nil
	}
	return results, errs
}
