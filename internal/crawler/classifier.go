package crawler

import (
	"net"
	"net/url"
	"strings"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// nonHTMLExtensions are path suffixes that are never parsed for links.
var nonHTMLExtensions = []string{
	".svg", ".png", ".jpg", ".jpeg", ".gif", ".ico",
	".css", ".js", ".json",
	".woff", ".woff2", ".ttf", ".eot",
}

// Classifier decides whether a discovered URL may be dispatched and how.
type Classifier struct {
	baseOrigin   string
	basePath     string
	internalOnly bool
	maxPathDepth int
}

// NewClassifier creates a classifier for the given base URL.
// A non-positive maxPathDepth selects domain.DefaultMaxPathDepth.
func NewClassifier(base *url.URL, internalOnly bool, maxPathDepth int) *Classifier {
	if maxPathDepth <= 0 {
		maxPathDepth = domain.DefaultMaxPathDepth
	}
	return &Classifier{
		baseOrigin:   Origin(base),
		basePath:     pathOf(base),
		internalOnly: internalOnly,
		maxPathDepth: maxPathDepth,
	}
}

// EligibleScheme reports whether u is http or https.
func (c *Classifier) EligibleScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// IsInternal reports whether u shares the base origin and its path starts with
// the base path. The prefix test is textual: "/docs" is a prefix of "/docs-archive".
func (c *Classifier) IsInternal(u *url.URL) bool {
	return Origin(u) == c.baseOrigin && strings.HasPrefix(pathOf(u), c.basePath)
}

// DepthOK reports whether u has at most maxPathDepth non-empty path segments.
func (c *Classifier) DepthOK(u *url.URL) bool {
	return PathDepth(u) <= c.maxPathDepth
}

// Admit applies the dispatch-time filters in order: scheme, depth, internal-only.
// It returns the reason a URL is dropped, or ok=true.
func (c *Classifier) Admit(u *url.URL) (reason domain.SkipReason, ok bool) {
	if !c.EligibleScheme(u) {
		return domain.SkipScheme, false
	}
	if !c.DepthOK(u) {
		return domain.SkipDepth, false
	}
	if c.internalOnly && !c.IsInternal(u) {
		return domain.SkipInternalOnly, false
	}
	return "", true
}

// Classify selects the dispatch strategy for an admitted URL.
func (c *Classifier) Classify(u *url.URL) domain.LinkKind {
	if c.IsInternal(u) && LooksLikeHTML(u, "") {
		return domain.KindInternal
	}
	return domain.KindExternal
}

// LooksLikeHTML reports whether u may be an HTML document. A known non-HTML
// extension always wins; otherwise a non-empty content type decides; with
// neither, the URL is assumed to be HTML.
func LooksLikeHTML(u *url.URL, contentType string) bool {
	p := strings.ToLower(u.Path)
	for _, ext := range nonHTMLExtensions {
		if strings.HasSuffix(p, ext) {
			return false
		}
	}
	if contentType != "" {
		return strings.Contains(strings.ToLower(contentType), "text/html")
	}
	return true
}

// PathDepth counts the non-empty "/"-separated segments of the URL path.
func PathDepth(u *url.URL) int {
	depth := 0
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}

// Origin returns scheme://host[:port] with the scheme and host lowercased and
// the default port for the scheme omitted.
func Origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	switch {
	case port != "":
		host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		host = "[" + host + "]"
	}
	return scheme + "://" + host
}

// pathOf returns the escaped path, with the empty path of "https://ex.com" read as "/".
func pathOf(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		return "/"
	}
	return p
}
