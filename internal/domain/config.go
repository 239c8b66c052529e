package domain

import "time"

// Version is the linkcheck release reported by --version and the default User-Agent.
const Version = "0.3.0"

const (
	// DefaultConcurrency bounds simultaneous network calls per wave.
	DefaultConcurrency = 10
	// DefaultMaxPathDepth is the largest number of non-empty path segments a URL may have.
	DefaultMaxPathDepth = 20
	// DefaultMaxBodyBytes caps how much of an internal HTML page is read for link extraction.
	DefaultMaxBodyBytes int64 = 10 << 20
	// HumanUserAgent is sent instead of the tool's own User-Agent when --human-agent is set.
	// Many sites answer 403 to non-browser agents.
	HumanUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config represents the complete link check configuration.
type Config struct {
	BaseURL          string  `json:"base_url"`
	StartURL         string  `json:"start_url"`
	InternalOnly     bool    `json:"internal_only"`
	HumanAgent       bool    `json:"human_agent"`
	Trace            bool    `json:"trace"`
	Concurrency      int     `json:"concurrency"`
	MaxPathDepth     int     `json:"max_path_depth"`
	Timeout          string  `json:"timeout"`
	Rate             float64 `json:"rate"`
	UserAgent        string  `json:"user_agent"`
	MaxBodyBytes     int64   `json:"max_body_bytes"`
	ReportFile       string  `json:"report_file"`
	MetricsAddr      string  `json:"metrics_addr"`
	VisitedRedisAddr string  `json:"visited_redis_addr"`
	Progress         *bool   `json:"progress,omitempty"`
	LogFormat        string  `json:"log_format"`
}

// CheckerConfig is the immutable, already-validated configuration of one crawl.
type CheckerConfig struct {
	// RunID tags logs, visited-store keys and the report.
	RunID string
	// BaseURL is the crawl's notion of "internal": same origin, path-prefixed by it.
	BaseURL        string
	InternalOnly   bool
	Concurrency    int
	MaxPathDepth   int
	RequestTimeout time.Duration
	UserAgent      string
	Rate           float64
	MaxBodyBytes   int64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency:  DefaultConcurrency,
		MaxPathDepth: DefaultMaxPathDepth,
		Timeout:      "30s",
		UserAgent:    "linkcheck/" + Version,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogFormat:    "text",
	}
}

// EffectiveUserAgent returns the User-Agent to send for this configuration.
func (c *Config) EffectiveUserAgent() string {
	if c.HumanAgent {
		return HumanUserAgent
	}
	return c.UserAgent
}

// ProgressEnabled reports whether the live indicator should run. An unset
// value means "only when attached to a terminal".
func (c *Config) ProgressEnabled(interactive bool) bool {
	if c.Progress == nil {
		return interactive
	}
	return *c.Progress
}
