package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/ppiankov/ontologica/internal/cache"
	"github.com/ppiankov/ontologica/internal/llm"
	"github.com/ppiankov/ontologica/internal/worker"
)

// LLM asks a language model for each verdict. Calls are rate limited per
// provider and identical items are answered from the cache.
type LLM struct {
	provider llm.Provider
	limiter  *worker.Limiter
	cache    cache.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

// NewLLM creates an LLM reviewer. limiter and c may be nil.
func NewLLM(provider llm.Provider, limiter *worker.Limiter, c cache.Cache, ttl time.Duration, logger *slog.Logger) *LLM {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLM{
		provider: provider,
		limiter:  limiter,
		cache:    c,
		ttl:      ttl,
		logger:   logger,
	}
}

var (
	verdictComplete   = []byte{1}
	verdictIncomplete = []byte{0}
)

// Review returns the cached verdict for item or asks the provider
func (r *LLM) Review(ctx context.Context, item Item) (bool, error) {
	key := itemKey(r.provider.Name(), item)
	if r.cache != nil {
		if v, ok := r.cache.Get(key); ok && len(v) == 1 {
			r.logger.Debug("verdict cache hit",
				slog.String("entity", item.Entity),
				slog.String("predicate", item.Predicate))
			return v[0] == 1, nil
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.provider.Name()); err != nil {
			return false, err
		}
	}

	resp, err := r.provider.Judge(ctx, llm.JudgeRequest{
		Entity:    item.Entity,
		Predicate: item.Predicate,
		Values:    item.Values,
	})
	if err != nil {
		return false, err
	}

	r.logger.Debug("verdict received",
		slog.String("entity", item.Entity),
		slog.String("predicate", item.Predicate),
		slog.Bool("complete", resp.Complete),
		slog.Int("tokens", resp.TokensUsed))

	if r.cache != nil {
		v := verdictIncomplete
		if resp.Complete {
			v = verdictComplete
		}
		if err := r.cache.Set(key, v, r.ttl); err != nil {
			r.logger.Warn("cache verdict", slog.String("error", err.Error()))
		}
	}
	return resp.Complete, nil
}

func itemKey(provider string, item Item) string {
	parts := append([]string{item.Entity, item.Predicate}, item.Values...)
	return cache.Key("verdict:"+provider, parts...)
}
