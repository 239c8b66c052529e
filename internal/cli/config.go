package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vnykmshr/linkcheck/internal/config"
	"github.com/vnykmshr/linkcheck/internal/domain"
)

// reportExtensions are the export formats the reporter can write.
var reportExtensions = map[string]bool{".json": true, ".csv": true, ".xlsx": true, ".html": true}

// LoadConfiguration loads configuration from file (if provided) and merges with CLI options.
// CLI flags override file configuration values; defaults fill whatever is still empty.
// The result is validated, so every returned error is a *domain.ConfigError or a
// file loading error.
func LoadConfiguration(configPath string, opts *ConfigOptions) (*domain.Config, error) {
	loader := config.NewLoader()

	var cfg *domain.Config
	if configPath != "" {
		loadedCfg, err := loader.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loadedCfg
	} else {
		cfg = &domain.Config{}
	}

	applyOptions(cfg, opts)
	cfg = loader.MergeWithDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOptions copies every flag that was given onto cfg. Boolean flags can
// only switch a setting on, so a file's "true" survives an absent flag.
func applyOptions(cfg *domain.Config, opts *ConfigOptions) {
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.StartURL != "" {
		cfg.StartURL = opts.StartURL
	}
	if opts.Concurrency != 0 {
		cfg.Concurrency = opts.Concurrency
	}
	if opts.MaxPathDepth != 0 {
		cfg.MaxPathDepth = opts.MaxPathDepth
	}
	if opts.Timeout != "" {
		cfg.Timeout = opts.Timeout
	}
	if opts.Rate != 0 {
		cfg.Rate = opts.Rate
	}
	if opts.UserAgent != "" {
		cfg.UserAgent = opts.UserAgent
	}
	if opts.ReportFile != "" {
		cfg.ReportFile = opts.ReportFile
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.VisitedRedisAddr != "" {
		cfg.VisitedRedisAddr = opts.VisitedRedisAddr
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	if opts.InternalOnly {
		cfg.InternalOnly = true
	}
	if opts.HumanAgent {
		cfg.HumanAgent = true
	}
	if opts.Trace {
		cfg.Trace = true
	}
	if opts.NoProgress {
		off := false
		cfg.Progress = &off
	}
}

// ValidateConfig checks the settings that do not involve the target URLs.
func ValidateConfig(cfg *domain.Config) error {
	if cfg.Concurrency < 1 {
		return &domain.ConfigError{Field: "concurrency", Value: fmt.Sprint(cfg.Concurrency), Reason: "must be at least 1"}
	}
	if cfg.MaxPathDepth < 1 {
		return &domain.ConfigError{Field: "max_path_depth", Value: fmt.Sprint(cfg.MaxPathDepth), Reason: "must be at least 1"}
	}
	if d, err := time.ParseDuration(cfg.Timeout); err != nil || d <= 0 {
		return &domain.ConfigError{Field: "timeout", Value: cfg.Timeout, Reason: "must be a positive duration such as 30s"}
	}
	if cfg.Rate < 0 {
		return &domain.ConfigError{Field: "rate", Value: fmt.Sprint(cfg.Rate), Reason: "must not be negative"}
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return &domain.ConfigError{Field: "log_format", Value: cfg.LogFormat, Reason: `must be "text" or "json"`}
	}
	if cfg.ReportFile != "" {
		ext := strings.ToLower(filepath.Ext(cfg.ReportFile))
		if !reportExtensions[ext] {
			return &domain.ConfigError{Field: "report_file", Value: cfg.ReportFile, Reason: "extension must be .json, .csv, .xlsx or .html"}
		}
	}
	return nil
}

// BuildCheckerConfig converts a validated Config into the immutable settings
// of one crawl tagged with runID.
func BuildCheckerConfig(cfg *domain.Config, runID string) (domain.CheckerConfig, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return domain.CheckerConfig{}, &domain.ConfigError{Field: "timeout", Value: cfg.Timeout, Reason: err.Error()}
	}

	return domain.CheckerConfig{
		RunID:          runID,
		BaseURL:        cfg.BaseURL,
		InternalOnly:   cfg.InternalOnly,
		Concurrency:    cfg.Concurrency,
		MaxPathDepth:   cfg.MaxPathDepth,
		RequestTimeout: timeout,
		UserAgent:      cfg.EffectiveUserAgent(),
		Rate:           cfg.Rate,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}, nil
}
