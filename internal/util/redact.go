// Package util provides URL helpers shared by the link checker's packages.
package util

import (
	"net/url"
	"strings"
)

// DefaultSensitiveParams contains common sensitive query parameter names
var DefaultSensitiveParams = []string{
	"api_key", "apikey", "api-key",
	"token", "access_token", "auth_token", "auth",
	"password", "passwd", "pwd",
	"secret", "client_secret",
	"key", "private_key",
	"authorization",
	"session", "session_id", "sessionid",
	"sig", "signature",
	"credential", "credentials",
}

const redacted = "[REDACTED]"

// RedactURLWith hides secrets in rawURL before it reaches a log line or a
// report: the userinfo password and every query parameter named in params
// (case-insensitive). An empty params list means DefaultSensitiveParams.
// Unparsable input is returned unchanged.
func RedactURLWith(rawURL string, params []string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if len(params) == 0 {
		params = DefaultSensitiveParams
	}

	changed := false
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		changed = true
	}

	if u.RawQuery != "" {
		sensitive := make(map[string]struct{}, len(params))
		for _, p := range params {
			sensitive[strings.ToLower(p)] = struct{}{}
		}
		query := u.Query()
		for key := range query {
			if _, ok := sensitive[strings.ToLower(key)]; ok {
				query.Set(key, redacted)
				changed = true
			}
		}
		if changed {
			u.RawQuery = query.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return u.String()
}

// RedactURL is RedactURLWith using DefaultSensitiveParams.
func RedactURL(rawURL string) string {
	return RedactURLWith(rawURL, nil)
}
