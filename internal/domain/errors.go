package domain

import (
	"fmt"
	"net/http"
)

// ConfigError is a malformed base/start URL, an origin mismatch or an invalid
// setting. It is raised before any crawl work begins.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// TransportError is a connection, DNS, TLS or timeout failure for one URL.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError is a non-2xx HTTP status for one URL.
type ProtocolError struct {
	URL        string
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// LinkParseError is a discovered token that does not resolve to a URL.
// It is dropped and never counted.
type LinkParseError struct {
	Token string
	Err   error
}

func (e *LinkParseError) Error() string {
	return fmt.Sprintf("cannot parse link %q: %v", e.Token, e.Err)
}

func (e *LinkParseError) Unwrap() error { return e.Err }

// BodyDecodeError is an internal HTML body that could not be decoded to text.
// It is recorded as a per-URL failure.
type BodyDecodeError struct {
	URL string
	Err error
}

func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("cannot decode body of %s: %v", e.URL, e.Err)
}

func (e *BodyDecodeError) Unwrap() error { return e.Err }
