package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/ppiankov/ontologica/internal/model"
)

type fakeChecker struct {
	calls int32
	fail  map[string]bool
}

func (c *fakeChecker) CheckFile(ctx context.Context, path string) (*model.Report, error) {
	atomic.AddInt32(&c.calls, 1)
	if c.fail[path] {
		return nil, errors.New("boom")
	}
	return &model.Report{Source: path}, nil
}

func TestBatchProcessor_ProcessFiles_Order(t *testing.T) {
	checker := &fakeChecker{fail: map[string]bool{"b.ont": true}}
	paths := []string{"a.ont", "b.ont", "c.ont", "d.ont", "e.ont"}

	results := NewBatchProcessor(checker, 3).ProcessFiles(context.Background(), paths)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], r.Path)
		}
	}
	if results[1].Error == nil {
		t.Error("expected b.ont to fail")
	}
	if results[0].Report == nil || results[0].Report.Source != "a.ont" {
		t.Errorf("unexpected report for a.ont: %+v", results[0].Report)
	}
	if atomic.LoadInt32(&checker.calls) != int32(len(paths)) {
		t.Errorf("expected %d calls, got %d", len(paths), checker.calls)
	}
}

func TestBatchProcessor_ProcessFiles_Empty(t *testing.T) {
	results := NewBatchProcessor(&fakeChecker{}, 2).ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewBatchProcessor(&fakeChecker{}, 2).ProcessFiles(ctx, []string{"a.ont", "b.ont"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !errors.Is(r.Error, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Path, r.Error)
		}
	}
}

func TestReadPathsFromFile(t *testing.T) {
	list := filepath.Join(t.TempDir(), "files.txt")
	content := "# ontologies\nmath.ont\n\nlogic.ont\nmath.ont\n  physics.ont  \n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}
	want := []string{"math.ont", "logic.ont", "physics.ont"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}

	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing list file")
	}
}
