package model

import (
	"runtime"
	"time"
)

// Config is the effective ontologica configuration. Field tags serve both
// viper (mapstructure) and yaml.v3.
type Config struct {
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Review      ReviewConfig      `yaml:"review" mapstructure:"review"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format        string `yaml:"format" mapstructure:"format"` // text, json, yaml, markdown, html
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeValues bool   `yaml:"include_values" mapstructure:"include_values"` // Embed values in structured reports
}

// Review modes
const (
	ReviewNone        = "none"
	ReviewInteractive = "interactive"
	ReviewLLM         = "llm"
)

// ReviewConfig selects how completeness judgments are gathered
type ReviewConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// LLMConfig configures the LLM completeness reviewer
type LLMConfig struct {
	Provider          string        `yaml:"provider" mapstructure:"provider"`
	Model             string        `yaml:"model" mapstructure:"model"`
	APIKey            string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL           string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int           `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:        "text",
			IncludeValues: true,
		},
		Review: ReviewConfig{
			Mode: ReviewNone,
		},
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         16,
			RequestsPerSecond: 2,
			Burst:             2,
			CacheTTL:          30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
