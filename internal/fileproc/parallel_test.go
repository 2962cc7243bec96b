package fileproc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bgaffney/scalpel/pkg/parser"
)

func fakeFiles(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("file_%02d.py", i)
	}
	return files
}

func TestMapCtx(t *testing.T) {
	files := fakeFiles(20)

	results, errs := MapCtx(context.Background(), files, 0, func(_ *parser.Parser, path string) (string, error) {
		return path, nil
	}, nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}

	sort.Strings(results)
	for i, r := range results {
		if r != files[i] {
			t.Errorf("result[%d] = %q, want %q", i, r, files[i])
		}
	}
}

func TestMapCtx_PartialFailure(t *testing.T) {
	files := fakeFiles(10)
	boom := errors.New("boom")

	results, errs := MapCtx(context.Background(), files, 0, func(_ *parser.Parser, path string) (int, error) {
		if path == "file_03.py" || path == "file_07.py" {
			return 0, boom
		}
		return 1, nil
	}, nil)

	if len(results) != 8 {
		t.Errorf("got %d results, want 8", len(results))
	}
	if errs == nil || len(errs.All()) != 2 {
		t.Fatalf("errs = %v, want 2 failures", errs)
	}
	for _, fe := range errs.All() {
		if !errors.Is(fe.Err, boom) {
			t.Errorf("unexpected error for %s: %v", fe.Path, fe.Err)
		}
	}
}

func TestMapCtx_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := MapCtx(ctx, fakeFiles(5), 1, func(_ *parser.Parser, path string) (int, error) {
		return 1, nil
	}, nil)

	if len(results) != 0 {
		t.Errorf("got %d results after cancellation, want 0", len(results))
	}
	if errs == nil || len(errs.All()) != 5 {
		t.Fatalf("errs = %v, want 5 cancellation failures", errs)
	}
	for _, fe := range errs.All() {
		if !errors.Is(fe.Err, context.Canceled) {
			t.Errorf("error for %s = %v, want context.Canceled", fe.Path, fe.Err)
		}
	}
}

func TestMapCtx_WorkerLimitAndParserReuse(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[*parser.Parser]int)

	_, errs := MapCtx(context.Background(), fakeFiles(16), 2, func(psr *parser.Parser, path string) (int, error) {
		mu.Lock()
		seen[psr]++
		mu.Unlock()
		return 0, nil
	}, nil)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}

	// Two workers means at most two parser instances across all files.
	if len(seen) > 2 {
		t.Errorf("got %d parser instances, want at most 2", len(seen))
	}
	total := 0
	for _, n := range seen {
		total += n
	}
	if total != 16 {
		t.Errorf("parsers saw %d files, want 16", total)
	}
}

func TestMapCtx_Progress(t *testing.T) {
	files := fakeFiles(12)
	var ticks atomic.Int64

	_, errs := MapCtx(context.Background(), files, 0, func(_ *parser.Parser, path string) (int, error) {
		if path == "file_00.py" {
			return 0, errors.New("bad file")
		}
		return 1, nil
	}, func() { ticks.Add(1) })

	// Progress fires for failed files too.
	if got := ticks.Load(); got != int64(len(files)) {
		t.Errorf("ticks = %d, want %d", got, len(files))
	}
	if errs == nil || len(errs.All()) != 1 {
		t.Fatalf("errs = %v, want 1 failure", errs)
	}
}

func TestMapCtx_Empty(t *testing.T) {
	results, errs := MapCtx(context.Background(), nil, 0, func(_ *parser.Parser, path string) (int, error) {
		return 1, nil
	}, nil)
	if results != nil || errs != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", results, errs)
	}
}

func TestFileErrors_Error(t *testing.T) {
	errs := &FileErrors{}
	if got := errs.Error(); got != "no errors" {
		t.Errorf("empty Error() = %q", got)
	}
	if !errs.Empty() {
		t.Error("Empty() = false for fresh FileErrors")
	}

	errs.Add("a.py", errors.New("parse failed"))
	if got := errs.Error(); got != "a.py: parse failed" {
		t.Errorf("single Error() = %q", got)
	}

	errs.Add("b.py", errors.New("read failed"))
	if got := errs.Error(); got != "2 files failed (first: a.py: parse failed)" {
		t.Errorf("multi Error() = %q", got)
	}
}
