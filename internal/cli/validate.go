package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/vnykmshr/linkcheck/internal/crawler"
	"github.com/vnykmshr/linkcheck/internal/domain"
	"github.com/vnykmshr/linkcheck/internal/util"
)

// MinRate is the minimum allowed rate (requests per second) when limiting is on.
const MinRate = 0.1

// ValidateTargets parses the base and start URLs and checks that both are
// absolute http(s) URLs on the same origin. An empty start means the base.
// Every failure is a *domain.ConfigError, raised before any request is made.
func ValidateTargets(base, start string) (*url.URL, *url.URL, error) {
	baseURL, err := util.ParseTarget("base_url", base)
	if err != nil {
		return nil, nil, err
	}
	if start == "" {
		return baseURL, baseURL, nil
	}

	startURL, err := util.ParseTarget("start_url", start)
	if err != nil {
		return nil, nil, err
	}

	if crawler.Origin(startURL) != crawler.Origin(baseURL) {
		return nil, nil, &domain.ConfigError{
			Field:  "start_url",
			Value:  start,
			Reason: fmt.Sprintf("origin %s differs from base origin %s", crawler.Origin(startURL), crawler.Origin(baseURL)),
		}
	}
	return baseURL, startURL, nil
}

// ValidateRateLimit raises a positive rate below MinRate to MinRate, warning on w.
// Zero means unlimited and is left alone.
func ValidateRateLimit(w io.Writer, rate *float64) {
	if *rate > 0 && *rate < MinRate {
		fmt.Fprintf(w, "WARNING: Rate %.2f req/s is below minimum %.2f req/s, using %.2f\n", *rate, MinRate, MinRate)
		*rate = MinRate
	}
}

// IsInteractiveTerminal reports whether f is a terminal rather than a pipe or file.
func IsInteractiveTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
