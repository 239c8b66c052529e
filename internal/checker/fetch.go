package checker

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/vnykmshr/linkcheck/internal/crawler"
	"github.com/vnykmshr/linkcheck/internal/domain"
)

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// fetchInternal GETs an internal URL and, when the response is HTML, extracts
// the links it contains. Non-HTML responses are leaves.
func (c *Checker) fetchInternal(ctx context.Context, u *url.URL) domain.Outcome {
	start := time.Now()
	out := domain.Outcome{Kind: domain.KindInternal}
	done := func() domain.Outcome {
		out.Duration = time.Since(start)
		return out
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		out.Err = &domain.TransportError{URL: u.String(), Err: err}
		return done()
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", acceptHTML)

	resp, err := c.client.Do(req)
	if err != nil {
		out.Err = &domain.TransportError{URL: u.String(), Err: err}
		return done()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	out.StatusCode = resp.StatusCode
	if !isSuccess(resp.StatusCode) {
		out.Err = &domain.ProtocolError{URL: u.String(), StatusCode: resp.StatusCode}
		return done()
	}

	contentType := resp.Header.Get("Content-Type")
	if !crawler.LooksLikeHTML(u, contentType) {
		return done()
	}

	body, err := readText(resp.Body, contentType, c.config.MaxBodyBytes)
	if err != nil {
		out.Err = &domain.BodyDecodeError{URL: u.String(), Err: err}
		return done()
	}

	out.Links = c.extractor.Extract(u, body)
	return done()
}

// checkExternal validates a link without reading or parsing it.
func (c *Checker) checkExternal(ctx context.Context, u *url.URL) domain.Outcome {
	start := time.Now()
	out := domain.Outcome{Kind: domain.KindExternal}

	status, err := c.validator.Check(ctx, u.String())
	out.Duration = time.Since(start)
	out.StatusCode = status

	switch {
	case err != nil:
		out.Err = &domain.TransportError{URL: u.String(), Err: err}
	case !isSuccess(status):
		out.Err = &domain.ProtocolError{URL: u.String(), StatusCode: status}
	}
	return out
}

// readText reads at most limit bytes of body and decodes them to UTF-8 using
// the charset declared in contentType or sniffed from the document.
func readText(body io.Reader, contentType string, limit int64) (string, error) {
	r, err := charset.NewReader(io.LimitReader(body, limit), contentType)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
