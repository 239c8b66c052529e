package crawler

import (
	"net/url"
	"strings"
)

// Normalize returns the visited key of u: origin plus path, without query or
// fragment, and without one trailing "/" unless the path is the root.
// "https://a.com/x/", "https://a.com/x" and "https://a.com/x?q=1#f" share a key.
func Normalize(u *url.URL) string {
	p := pathOf(u)
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return Origin(u) + p
}
