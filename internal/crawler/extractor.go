package crawler

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/vnykmshr/linkcheck/internal/domain"
	"github.com/vnykmshr/linkcheck/internal/util"
)

var errEmptyToken = errors.New("empty link")

// Extractor turns an HTML page into frontier entries referred by that page.
type Extractor struct {
	tokens     domain.TokenExtractor
	classifier *Classifier
	logger     *slog.Logger
}

// NewExtractor creates an extractor that tokenizes with tokens and filters with classifier.
func NewExtractor(tokens domain.TokenExtractor, classifier *Classifier, logger *slog.Logger) *Extractor {
	return &Extractor{
		tokens:     tokens,
		classifier: classifier,
		logger:     logger,
	}
}

// Extract resolves every link token of body against page and keeps those that
// pass the depth cap and, when enabled, the internal-only policy. Tokens that
// do not resolve are dropped.
func (e *Extractor) Extract(page *url.URL, body string) []domain.FrontierEntry {
	raw := e.tokens.Extract(body)
	entries := make([]domain.FrontierEntry, 0, len(raw))

	for _, token := range raw {
		link, err := Resolve(page, token)
		if err != nil {
			e.logger.Debug("Dropping unparsable link",
				"page", util.RedactURL(page.String()),
				"error", err)
			continue
		}
		if !e.classifier.DepthOK(link) {
			e.logger.Debug("Dropping link over path depth",
				"url", util.RedactURL(link.String()))
			continue
		}
		if e.classifier.internalOnly && !e.classifier.IsInternal(link) {
			continue
		}
		entries = append(entries, domain.FrontierEntry{URL: link, Referrer: page})
	}

	return entries
}

// Resolve turns a raw link token into an absolute URL. Absolute tokens are
// used as-is; tokens starting with "/" resolve against the page's origin and
// every other relative token against the page itself.
func Resolve(page *url.URL, token string) (*url.URL, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &domain.LinkParseError{Token: token, Err: errEmptyToken}
	}

	ref, err := url.Parse(token)
	if err != nil {
		return nil, &domain.LinkParseError{Token: token, Err: err}
	}
	if ref.IsAbs() {
		return ref, nil
	}

	if strings.HasPrefix(token, "/") {
		root := &url.URL{Scheme: page.Scheme, Host: page.Host, Path: "/"}
		return root.ResolveReference(ref), nil
	}
	return page.ResolveReference(ref), nil
}
