package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/ontologica/internal/cache"
	"github.com/ppiankov/ontologica/internal/llm"
	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/pipeline"
	"github.com/ppiankov/ontologica/internal/review"
	"github.com/ppiankov/ontologica/internal/worker"
)

var errInteractiveBatch = errors.New("interactive review is not available in batch mode")

// progressWriter picks where progress, status and prompts go. Structured
// reports own stdout, so everything else moves to stderr.
func progressWriter(format string, stdout, stderr io.Writer) io.Writer {
	if isTextFormat(format) {
		return stdout
	}
	return stderr
}

// reviewOptions returns the pipeline options for the configured review mode.
// A nil prompt means interactive review is unavailable.
func reviewOptions(ctx context.Context, cfg *model.Config, logger *slog.Logger, prompt *review.Prompt) ([]pipeline.Option, error) {
	switch cfg.Review.Mode {
	case "", model.ReviewNone:
		return nil, nil

	case model.ReviewInteractive:
		if prompt == nil {
			return nil, errInteractiveBatch
		}
		return []pipeline.Option{pipeline.WithReviewer(prompt), pipeline.WithObserver(prompt)}, nil

	case model.ReviewLLM:
		r, err := newLLMReviewer(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return []pipeline.Option{pipeline.WithReviewer(r)}, nil

	default:
		return nil, fmt.Errorf("unknown review mode: %s (supported: none, interactive, llm)", cfg.Review.Mode)
	}
}

// newLLMReviewer wires the provider, limiter and verdict cache after checking
// that the provider answers
func newLLMReviewer(ctx context.Context, cfg *model.Config, logger *slog.Logger) (*review.LLM, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	if provider == nil {
		return nil, errors.New("llm review needs llm.provider to be set")
	}

	checkCtx := ctx
	if cfg.LLM.Timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.LLM.Timeout)*time.Second)
		defer cancel()
	}
	if !provider.IsAvailable(checkCtx) {
		return nil, fmt.Errorf("LLM provider %s is not reachable (check llm.api_key and llm.base_url)", provider.Name())
	}

	limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)
	verdicts := cache.NewMemoryCache(cfg.LLM.CacheTTL, cfg.LLM.CacheTTL)

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ LLM reviewer: %s/%s\n", provider.Name(), cfg.LLM.Model)
	}
	return review.NewLLM(provider, limiter, verdicts, cfg.LLM.CacheTTL, logger), nil
}
