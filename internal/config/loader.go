// Package config reads and writes linkcheck configuration files.
//
// A file is JSON matching domain.Config. String values may reference the
// environment as ${NAME}, or ${NAME:-fallback} to allow NAME to be unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// envRef captures the variable name and, when ":-" is present, the fallback.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// Loader reads, writes and completes link check configurations.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile reads the link check configuration at path, expanding
// environment references first. Fields absent from the file stay zero;
// MergeWithDefaults fills them.
func (l *Loader) LoadFromFile(path string) (*domain.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading link check config %s: %w", path, err)
	}

	expanded, err := substituteEnvVars(string(raw))
	if err != nil {
		return nil, fmt.Errorf("link check config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := json.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("link check config %s is not valid JSON: %w", path, err)
	}
	return &cfg, nil
}

// substituteEnvVars expands every ${NAME} and ${NAME:-fallback} in content.
// A set but empty variable expands to "". An unset variable without a
// fallback is an error naming every such variable once.
func substituteEnvVars(content string) (string, error) {
	var unset []string

	var b strings.Builder
	last := 0
	for _, m := range envRef.FindAllStringSubmatchIndex(content, -1) {
		b.WriteString(content[last:m[0]])
		last = m[1]

		name := content[m[2]:m[3]]
		if value, ok := os.LookupEnv(name); ok {
			b.WriteString(value)
			continue
		}
		if m[4] >= 0 {
			b.WriteString(content[m[6]:m[7]])
			continue
		}
		if !slices.Contains(unset, name) {
			unset = append(unset, name)
		}
	}
	b.WriteString(content[last:])

	if len(unset) > 0 {
		return "", fmt.Errorf("unset environment variables %s (export them or write ${NAME:-fallback})",
			strings.Join(unset, ", "))
	}
	return b.String(), nil
}

// SaveToFile writes config to path as indented JSON, readable only by the owner.
// It is what -save-config uses to capture the effective settings of a run.
func (l *Loader) SaveToFile(config *domain.Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding link check config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing link check config %s: %w", path, err)
	}
	return nil
}

// MergeWithDefaults fills every unset field of config from
// domain.DefaultConfig. StartURL falls back to BaseURL so the crawl starts at
// the base by default.
func (l *Loader) MergeWithDefaults(config *domain.Config) *domain.Config {
	defaults := domain.DefaultConfig()

	if config.StartURL == "" {
		config.StartURL = config.BaseURL
	}
	if config.Concurrency == 0 {
		config.Concurrency = defaults.Concurrency
	}
	if config.MaxPathDepth == 0 {
		config.MaxPathDepth = defaults.MaxPathDepth
	}
	if config.Timeout == "" {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if config.LogFormat == "" {
		config.LogFormat = defaults.LogFormat
	}

	return config
}
