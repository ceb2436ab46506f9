package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/ontologica/internal/model"
	"github.com/ppiankov/ontologica/internal/pipeline"
	"github.com/ppiankov/ontologica/internal/review"
	"gopkg.in/yaml.v3"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example", "example"},
		{"my ontology", "my-ontology"},
		{"a:b*c?", "a_b_c_"},
		{"", "report"},
		{"..", "report"},
		{strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportNames(t *testing.T) {
	names := newReportNames(".json")

	got := []string{
		names.next("a/example.ont"),
		names.next("b/example.ont"),
		names.next("math.ont"),
		names.next("c/example"),
	}
	want := []string{"example.json", "example-2.json", "math.json", "example-3.json"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	// A source whose base name equals an issued suffix gets its own name
	names = newReportNames(".json")
	got = []string{names.next("x/a.ont"), names.next("y/a.ont"), names.next("a-2.ont")}
	want = []string{"a.json", "a-2.json", "a-2-2.json"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestIsTextFormat(t *testing.T) {
	for _, f := range []string{"", "text", "markdown", "MD"} {
		if !isTextFormat(f) {
			t.Errorf("expected %q to be textual", f)
		}
	}
	for _, f := range []string{"json", "yaml", "html"} {
		if isTextFormat(f) {
			t.Errorf("expected %q to be structured", f)
		}
	}
}

func TestReviewOptions(t *testing.T) {
	ctx := context.Background()
	cfg := model.DefaultConfig()
	prompt := review.NewPrompt(strings.NewReader(""), io.Discard)

	opts, err := reviewOptions(ctx, cfg, nil, prompt)
	if err != nil || opts != nil {
		t.Errorf("expected no options for mode none, got %v, %v", opts, err)
	}

	cfg.Review.Mode = model.ReviewInteractive
	if _, err := reviewOptions(ctx, cfg, nil, nil); !errors.Is(err, errInteractiveBatch) {
		t.Errorf("expected errInteractiveBatch, got %v", err)
	}
	if opts, err := reviewOptions(ctx, cfg, nil, prompt); err != nil || len(opts) != 2 {
		t.Errorf("expected reviewer and observer options, got %d, %v", len(opts), err)
	}

	cfg.Review.Mode = model.ReviewLLM
	cfg.LLM.Provider = ""
	if _, err := reviewOptions(ctx, cfg, nil, prompt); err == nil {
		t.Error("expected error for llm review without provider")
	}

	cfg.Review.Mode = "oracle"
	if _, err := reviewOptions(ctx, cfg, nil, prompt); err == nil {
		t.Error("expected error for unknown review mode")
	}
}

func modelsServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o-mini"}]}`))
		} else {
			_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestReviewOptions_LLMPreflight(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Review.Mode = model.ReviewLLM
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Timeout = 5

	cfg.LLM.BaseURL = modelsServer(t, http.StatusOK).URL
	if opts, err := reviewOptions(context.Background(), cfg, nil, nil); err != nil || len(opts) != 1 {
		t.Errorf("expected one reviewer option, got %d, %v", len(opts), err)
	}

	cfg.LLM.BaseURL = modelsServer(t, http.StatusUnauthorized).URL
	if _, err := reviewOptions(context.Background(), cfg, nil, nil); err == nil || !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("expected unreachable provider error, got %v", err)
	}
}

func TestProgressWriter_PromptFollowsFormat(t *testing.T) {
	const ontology = `A thing is logic.
A thing about logic is its rules.
logic its rules modus ponens
`
	tests := []struct {
		format     string
		wantStdout bool
	}{
		{"text", true},
		{"markdown", true},
		{"json", false},
		{"yaml", false},
		{"html", false},
	}

	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		cfg := model.DefaultConfig()
		cfg.Output.Format = tt.format
		cfg.Review.Mode = model.ReviewInteractive

		progress := progressWriter(cfg.Output.Format, &stdout, &stderr)
		opts, err := reviewOptions(context.Background(), cfg, nil, review.NewPrompt(strings.NewReader("y\n"), progress))
		if err != nil {
			t.Fatalf("%s: reviewOptions failed: %v", tt.format, err)
		}

		p := pipeline.NewPipeline(cfg, append(opts, pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))...)
		session, err := p.ParseReader(context.Background(), "inline", strings.NewReader(ontology))
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tt.format, err)
		}
		if err := p.Review(context.Background(), session); err != nil {
			t.Fatalf("%s: review failed: %v", tt.format, err)
		}

		prompted, clean := &stdout, &stderr
		if !tt.wantStdout {
			prompted, clean = &stderr, &stdout
		}
		if !strings.Contains(prompted.String(), "Is this predicate complete? (y/n): ") {
			t.Errorf("%s: expected prompt on the progress writer, got %q", tt.format, prompted.String())
		}
		if clean.Len() != 0 {
			t.Errorf("%s: expected nothing on the other stream, got %q", tt.format, clean.String())
		}
	}
}

func TestNormalizeConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Review.Mode = " LLM "
	cfg.Output.Format = "JSON"
	cfg.LLM.Provider = "OpenAI"
	cfg.Log.Level = "DEBUG"

	normalizeConfig(cfg)

	if cfg.Review.Mode != model.ReviewLLM {
		t.Errorf("expected review mode llm, got %q", cfg.Review.Mode)
	}
	if cfg.Output.Format != "json" || cfg.LLM.Provider != "openai" || cfg.Log.Level != "debug" {
		t.Errorf("expected lowercased settings, got %+v", cfg)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ontologica", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config is not valid YAML: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected format text, got %s", cfg.Output.Format)
	}
	if cfg.LLM.CacheTTL != model.DefaultConfig().LLM.CacheTTL {
		t.Errorf("expected cache TTL %v, got %v", model.DefaultConfig().LLM.CacheTTL, cfg.LLM.CacheTTL)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("expected error when config already exists")
	}
}
