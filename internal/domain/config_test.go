package domain

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Concurrency != 10 {
		t.Errorf("Expected Concurrency 10, got %d", cfg.Concurrency)
	}
	if cfg.MaxPathDepth != 20 {
		t.Errorf("Expected MaxPathDepth 20, got %d", cfg.MaxPathDepth)
	}
	if cfg.Timeout != "30s" {
		t.Errorf("Expected Timeout '30s', got '%s'", cfg.Timeout)
	}
	if cfg.UserAgent != "linkcheck/"+Version {
		t.Errorf("Expected UserAgent 'linkcheck/%s', got '%s'", Version, cfg.UserAgent)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Expected MaxBodyBytes %d, got %d", DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("Expected LogFormat 'text', got '%s'", cfg.LogFormat)
	}

	// Required or opt-in fields stay empty
	if cfg.BaseURL != "" {
		t.Errorf("Expected empty BaseURL, got '%s'", cfg.BaseURL)
	}
	if cfg.InternalOnly {
		t.Error("Expected InternalOnly to be false")
	}
	if cfg.Rate != 0 {
		t.Errorf("Expected Rate 0 (unlimited), got %v", cfg.Rate)
	}
	if cfg.Progress != nil {
		t.Error("Expected Progress to be unset")
	}
}

func TestConfig_EffectiveUserAgent(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.EffectiveUserAgent(); got != cfg.UserAgent {
		t.Errorf("Expected tool User-Agent, got '%s'", got)
	}

	cfg.HumanAgent = true
	if got := cfg.EffectiveUserAgent(); got != HumanUserAgent {
		t.Errorf("Expected browser User-Agent, got '%s'", got)
	}
}

func TestConfig_ProgressEnabled(t *testing.T) {
	enabled := true
	disabled := false

	tests := []struct {
		name        string
		progress    *bool
		interactive bool
		want        bool
	}{
		{"unset on terminal", nil, true, true},
		{"unset when piped", nil, false, false},
		{"forced on", &enabled, false, true},
		{"forced off", &disabled, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Progress: tt.progress}
			if got := cfg.ProgressEnabled(tt.interactive); got != tt.want {
				t.Errorf("ProgressEnabled(%v) = %v, want %v", tt.interactive, got, tt.want)
			}
		})
	}
}
