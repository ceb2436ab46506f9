// Package llm asks a language model whether the recorded values of a
// predicate are complete.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseableVerdict is returned when the model answers with neither
// COMPLETE nor INCOMPLETE
var ErrUnparseableVerdict = errors.New("unparseable completeness verdict")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Judge asks whether the values listed in req exhaust the predicate
	Judge(ctx context.Context, req JudgeRequest) (*JudgeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// JudgeRequest is one (entity, predicate) pair with its values
type JudgeRequest struct {
	Entity    string
	Predicate string
	Values    []string

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// JudgeResponse carries the model's verdict
type JudgeResponse struct {
	Complete   bool
	Answer     string // Raw model output
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 16,
	}
}

// systemPrompt frames the completeness question
const systemPrompt = `You review a small plaintext ontology. Each predicate of an entity has a list of recorded values.
Decide whether the listed values are an exhaustive answer for that predicate.
Answer with exactly one word on the first line: COMPLETE or INCOMPLETE.`

// BuildPrompt constructs the user prompt for one pair
func BuildPrompt(req JudgeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entity: %s\n", req.Entity)
	fmt.Fprintf(&b, "Predicate: %s\n", req.Predicate)
	b.WriteString("Values:\n")
	for _, v := range req.Values {
		fmt.Fprintf(&b, "- %s\n", v)
	}
	b.WriteString("\nIs this predicate complete?")
	return b.String()
}

// ParseVerdict reads COMPLETE or INCOMPLETE from the first line of a reply
func ParseVerdict(answer string) (bool, error) {
	first := strings.TrimSpace(answer)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	word := strings.ToUpper(strings.Trim(first, " \t\r.!*`\"'"))

	switch word {
	case "COMPLETE", "YES":
		return true, nil
	case "INCOMPLETE", "NO":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnparseableVerdict, first)
	}
}
