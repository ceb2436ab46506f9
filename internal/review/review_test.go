package review

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/ontologica/internal/cache"
	"github.com/ppiankov/ontologica/internal/llm"
	"github.com/ppiankov/ontologica/internal/ontology"
	"github.com/ppiankov/ontologica/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewStore() *ontology.Store {
	s := ontology.NewStore()
	s.AddEntity("mathematics")
	s.AddPredicate("mathematics", "what it is")
	s.AddPredicate("mathematics", "what it's used for")
	s.AddPredicate("logic", "its rules")
	s.AddValue("mathematics", "what it is", "a formal science")
	s.AddValue("logic", "its rules", "modus ponens")
	s.AddValue("logic", "its rules", "modus tollens")
	return s
}

func TestRun_SkipsUnclosedAndRecordsVerdicts(t *testing.T) {
	s := reviewStore()
	var seen []Item
	r := ReviewerFunc(func(ctx context.Context, item Item) (bool, error) {
		seen = append(seen, item)
		return item.Entity == "logic", nil
	})

	n, err := Run(context.Background(), s, r, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, seen, 2)
	assert.Equal(t, Item{Entity: "logic", Predicate: "its rules", Values: []string{"modus ponens", "modus tollens"}}, seen[0])
	assert.Equal(t, "mathematics", seen[1].Entity)

	complete, ok := s.Complete("logic", "its rules")
	assert.True(t, ok)
	assert.True(t, complete)

	complete, ok = s.Complete("mathematics", "what it is")
	assert.True(t, ok)
	assert.False(t, complete)

	_, ok = s.Complete("mathematics", "what it's used for")
	assert.False(t, ok, "predicates without values are never reviewed")
}

func TestRun_StopsOnError(t *testing.T) {
	s := reviewStore()
	boom := errors.New("boom")
	calls := 0
	r := ReviewerFunc(func(ctx context.Context, item Item) (bool, error) {
		calls++
		if calls == 2 {
			return false, boom
		}
		return true, nil
	})

	n, err := Run(context.Background(), s, r, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, n)
	assert.Len(t, s.Reviewed(), 1, "verdicts recorded before the error are kept")
}

func TestPrompt_Interactive(t *testing.T) {
	s := reviewStore()
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("Y\nn\n"), &out)

	n, err := Run(context.Background(), s, p, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	complete, _ := s.Complete("logic", "its rules")
	assert.True(t, complete)
	complete, _ = s.Complete("mathematics", "what it is")
	assert.False(t, complete)

	text := out.String()
	assert.Contains(t, text, "\nEntity: logic\n")
	assert.Contains(t, text, "  Predicate: its rules\n  Values:\n    - modus ponens\n    - modus tollens\n")
	assert.Contains(t, text, "  Predicate 'what it's used for' has no values (not closed)\n")
	assert.Contains(t, text, "Is this predicate complete? (y/n): ")
}

func TestPrompt_AnswerWithoutNewline(t *testing.T) {
	p := NewPrompt(strings.NewReader("y"), &bytes.Buffer{})
	complete, err := p.Review(context.Background(), Item{Entity: "a", Predicate: "b", Values: []string{"c"}})
	require.NoError(t, err)
	assert.True(t, complete)
}

func TestPrompt_EOF(t *testing.T) {
	p := NewPrompt(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Review(context.Background(), Item{Entity: "a", Predicate: "b", Values: []string{"c"}})
	assert.ErrorIs(t, err, ErrNoAnswer)
}

type fakeProvider struct {
	calls    int32
	complete bool
	err      error
}

func (f *fakeProvider) Name() string                         { return "fake" }
func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }
func (f *fakeProvider) Judge(ctx context.Context, req llm.JudgeRequest) (*llm.JudgeResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.JudgeResponse{Complete: f.complete}, nil
}

func TestLLM_CachesVerdicts(t *testing.T) {
	provider := &fakeProvider{complete: true}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	r := NewLLM(provider, worker.NewLimiter(0, 1), c, 0, nil)

	item := Item{Entity: "logic", Predicate: "its rules", Values: []string{"modus ponens"}}
	for i := 0; i < 3; i++ {
		complete, err := r.Review(context.Background(), item)
		require.NoError(t, err)
		assert.True(t, complete)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))

	item.Values = append(item.Values, "modus tollens")
	_, err := r.Review(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls), "different values must miss the cache")
}

func TestLLM_WithoutCacheOrLimiter(t *testing.T) {
	provider := &fakeProvider{complete: false}
	r := NewLLM(provider, nil, nil, 0, nil)

	complete, err := r.Review(context.Background(), Item{Entity: "a", Predicate: "b", Values: []string{"c"}})
	require.NoError(t, err)
	assert.False(t, complete)
}

func TestLLM_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: llm.ErrUnparseableVerdict}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	r := NewLLM(provider, nil, c, 0, nil)

	_, err := r.Review(context.Background(), Item{Entity: "a", Predicate: "b", Values: []string{"c"}})
	assert.ErrorIs(t, err, llm.ErrUnparseableVerdict)
	assert.Equal(t, 0, c.Len(), "failed verdicts are not cached")
}
