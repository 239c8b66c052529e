package checker

import (
	"context"
	"io"
	"net/http"
)

// maxDrainBytes bounds how much of an external response is read before the
// connection is released.
const maxDrainBytes = 64 * 1024

// HTTPValidator checks external links with a plain GET. Some servers reject
// HEAD, so the body is requested and then discarded unread.
type HTTPValidator struct {
	client    *http.Client
	userAgent string
}

// NewHTTPValidator creates a validator that sends requests through client.
func NewHTTPValidator(client *http.Client, userAgent string) *HTTPValidator {
	return &HTTPValidator{client: client, userAgent: userAgent}
}

// Check implements domain.LinkValidator. It returns the final status code
// after redirects, or an error if no response arrived.
func (v *HTTPValidator) Check(ctx context.Context, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, err
	}
	if v.userAgent != "" {
		req.Header.Set("User-Agent", v.userAgent)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Drain a little so keep-alive connections can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, nil
}
