package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/ontologica/internal/model"
)

// Checker checks one ontology file. Each call must use its own store.
type Checker interface {
	CheckFile(ctx context.Context, path string) (*model.Report, error)
}

// CheckJob checks one file
type CheckJob struct {
	Index   int
	Path    string
	Checker Checker
}

// Execute executes the check job
func (j *CheckJob) Execute(ctx context.Context) Result {
	report, err := j.Checker.CheckFile(ctx, j.Path)
	return &CheckResult{
		Index:  j.Index,
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// CheckResult is the outcome of one CheckJob
type CheckResult struct {
	Index  int
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple files concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessFiles checks every path and returns results in input order. Paths
// not started because ctx was cancelled carry ctx's error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*CheckResult {
	if len(paths) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		if !pool.Submit(&CheckJob{Index: i, Path: path, Checker: b.checker}) {
			// ctx ended; stop workers instead of draining the queue
			pool.Shutdown()
			break
		}
	}

	results := pool.Wait()

	out := make([]*CheckResult, 0, len(paths))
	done := make(map[int]bool, len(results))
	for _, r := range results {
		cr := r.(*CheckResult)
		done[cr.Index] = true
		out = append(out, cr)
	}
	for i, path := range paths {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			out = append(out, &CheckResult{Index: i, Path: path, Error: err})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ReadPathsFromFile reads ontology file paths from a list file (one per
// line). Blank lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
