// Package cli turns command-line flags and an optional config file into a
// validated link check configuration, and holds the help and warning output.
package cli

// ConfigOptions holds command-line flag values for configuration.
// These are passed to LoadConfiguration to build the final Config.
// Zero values mean "not given on the command line".
type ConfigOptions struct {
	BaseURL          string
	StartURL         string
	Timeout          string
	UserAgent        string
	ReportFile       string
	MetricsAddr      string
	VisitedRedisAddr string
	LogFormat        string
	Rate             float64
	Concurrency      int
	MaxPathDepth     int
	InternalOnly     bool
	HumanAgent       bool
	Trace            bool
	NoProgress       bool
}
