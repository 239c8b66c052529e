package util

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// ParseTarget parses rawURL as a crawl target named by field. It accepts only
// absolute http or https URLs with a host; anything else is a *domain.ConfigError.
// Private and loopback hosts are allowed since checking a local build is common.
func ParseTarget(field, rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &domain.ConfigError{Field: field, Reason: "URL cannot be empty"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &domain.ConfigError{Field: field, Value: rawURL, Reason: fmt.Sprintf("invalid URL syntax: %v", err)}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, &domain.ConfigError{
			Field:  field,
			Value:  rawURL,
			Reason: fmt.Sprintf("unsupported scheme %q (only http and https allowed)", parsed.Scheme),
		}
	}

	if parsed.Hostname() == "" {
		return nil, &domain.ConfigError{Field: field, Value: rawURL, Reason: "missing host"}
	}

	return parsed, nil
}
