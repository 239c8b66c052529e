// Package crawler classifies, normalizes and extracts the links a crawl walks.
package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// linkAttributes lists, per element, the attributes that hold a URL.
var linkAttributes = map[string][]string{
	"a":          {"href"},
	"area":       {"href"},
	"link":       {"href"},
	"img":        {"src", "srcset"},
	"script":     {"src"},
	"iframe":     {"src"},
	"frame":      {"src"},
	"embed":      {"src"},
	"source":     {"src", "srcset"},
	"track":      {"src"},
	"audio":      {"src"},
	"video":      {"src", "poster"},
	"object":     {"data"},
	"blockquote": {"cite"},
	"q":          {"cite"},
}

// hintRels are <link> relations that name an origin to connect to, not a resource.
const hintRels = "link[rel~=preconnect], link[rel~=dns-prefetch]"

// HTMLTokenizer extracts raw link attribute values from HTML documents.
type HTMLTokenizer struct{}

// NewHTMLTokenizer creates a tokenizer.
func NewHTMLTokenizer() *HTMLTokenizer {
	return &HTMLTokenizer{}
}

// Extract returns link attribute values in document order. Values are
// entity-decoded but otherwise untouched; resolution is the caller's job.
func (t *HTMLTokenizer) Extract(body string) []string {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil
	}
	doc := goquery.NewDocumentFromNode(root)

	var links []string
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		attrs, ok := linkAttributes[goquery.NodeName(s)]
		if !ok || s.Is(hintRels) {
			return
		}
		for _, name := range attrs {
			val, exists := s.Attr(name)
			if !exists {
				continue
			}
			if name == "srcset" {
				links = append(links, srcsetURLs(val)...)
				continue
			}
			if isValidLink(val) {
				links = append(links, strings.TrimSpace(val))
			}
		}
	})

	return links
}

// isValidLink drops values that can never name another resource.
func isValidLink(link string) bool {
	link = strings.TrimSpace(link)
	return link != "" && !strings.HasPrefix(link, "#")
}

// srcsetURLs returns the URL of every candidate in a srcset attribute.
func srcsetURLs(srcset string) []string {
	var urls []string
	for _, candidate := range strings.Split(srcset, ",") {
		fields := strings.Fields(candidate)
		if len(fields) > 0 && isValidLink(fields[0]) {
			urls = append(urls, fields[0])
		}
	}
	return urls
}
