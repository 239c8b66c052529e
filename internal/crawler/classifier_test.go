package crawler

import (
	"net/url"
	"strings"
	"testing"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u
}

func TestNormalize_Equivalence(t *testing.T) {
	a := Normalize(mustParse(t, "https://a.com/x/"))
	b := Normalize(mustParse(t, "https://a.com/x"))
	c := Normalize(mustParse(t, "https://a.com/x?q=1#f"))

	if a != b || b != c {
		t.Errorf("Expected equal keys, got %q, %q, %q", a, b, c)
	}
	if a != "https://a.com/x" {
		t.Errorf("Expected key 'https://a.com/x', got %q", a)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://a.com", "https://a.com/"},
		{"https://a.com/", "https://a.com/"},
		{"https://a.com/?q=1", "https://a.com/"},
		{"HTTPS://A.com/Docs/", "https://a.com/Docs"},
		{"https://a.com:443/x", "https://a.com/x"},
		{"http://a.com:8080/x/", "http://a.com:8080/x"},
		{"https://a.com/x//", "https://a.com/x/"},
		{"https://a.com/a%20b/", "https://a.com/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(mustParse(t, tt.raw)); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://ex.com/a/b", "https://ex.com"},
		{"https://ex.com:443", "https://ex.com"},
		{"http://ex.com:80/", "http://ex.com"},
		{"http://ex.com:443/", "http://ex.com:443"},
		{"http://127.0.0.1:8080/x", "http://127.0.0.1:8080"},
		{"http://[::1]:8080/x", "http://[::1]:8080"},
		{"http://[::1]/x", "http://[::1]"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Origin(mustParse(t, tt.raw)); got != tt.want {
				t.Errorf("Origin(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifier_IsInternal(t *testing.T) {
	c := NewClassifier(mustParse(t, "https://ex.com/docs"), false, 0)

	tests := []struct {
		raw      string
		internal bool
	}{
		{"https://ex.com/docs", true},
		{"https://ex.com/docs/guide", true},
		{"https://ex.com/docs?x=1", true},
		{"https://EX.com:443/docs/a", true},
		{"https://ex.com/blog", false},
		{"https://ex.com/", false},
		{"http://ex.com/docs", false},
		{"https://other.com/docs", false},
		{"https://sub.ex.com/docs", false},
		// Textual prefix match keeps sibling paths internal.
		{"https://ex.com/docs-archive", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := c.IsInternal(mustParse(t, tt.raw)); got != tt.internal {
				t.Errorf("IsInternal(%q) = %v, want %v", tt.raw, got, tt.internal)
			}
		})
	}
}

func TestClassifier_RootBaseMatchesWholeOrigin(t *testing.T) {
	c := NewClassifier(mustParse(t, "https://ex.com"), false, 0)

	if !c.IsInternal(mustParse(t, "https://ex.com")) {
		t.Error("Expected base itself to be internal")
	}
	if !c.IsInternal(mustParse(t, "https://ex.com/any/path")) {
		t.Error("Expected any path on the origin to be internal")
	}
}

func TestClassifier_DepthOK(t *testing.T) {
	c := NewClassifier(mustParse(t, "https://ex.com"), false, 0)

	twenty := "https://ex.com/" + strings.Repeat("a/", 20)
	twentyOne := "https://ex.com/" + strings.Repeat("a/", 21)

	if !c.DepthOK(mustParse(t, twenty)) {
		t.Error("Expected 20 segments to pass the default cap")
	}
	if c.DepthOK(mustParse(t, twentyOne)) {
		t.Error("Expected 21 segments to exceed the default cap")
	}
	if PathDepth(mustParse(t, "https://ex.com//a//b/")) != 2 {
		t.Error("Expected empty segments to be ignored")
	}

	strict := NewClassifier(mustParse(t, "https://ex.com"), false, 2)
	if strict.DepthOK(mustParse(t, "https://ex.com/a/b/c")) {
		t.Error("Expected custom cap of 2 to reject 3 segments")
	}
}

func TestClassifier_Admit(t *testing.T) {
	c := NewClassifier(mustParse(t, "https://ex.com"), true, 0)

	tests := []struct {
		raw    string
		ok     bool
		reason domain.SkipReason
	}{
		{"https://ex.com/a", true, ""},
		{"mailto:someone@ex.com", false, domain.SkipScheme},
		{"ftp://ex.com/file", false, domain.SkipScheme},
		{"https://ex.com/" + strings.Repeat("x/", 21), false, domain.SkipDepth},
		{"https://other.com/", false, domain.SkipInternalOnly},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			reason, ok := c.Admit(mustParse(t, tt.raw))
			if ok != tt.ok || reason != tt.reason {
				t.Errorf("Admit(%q) = (%q, %v), want (%q, %v)", tt.raw, reason, ok, tt.reason, tt.ok)
			}
		})
	}

	open := NewClassifier(mustParse(t, "https://ex.com"), false, 0)
	if _, ok := open.Admit(mustParse(t, "https://other.com/")); !ok {
		t.Error("Expected external URL to be admitted without internal-only")
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(mustParse(t, "https://ex.com"), false, 0)

	tests := []struct {
		raw  string
		kind domain.LinkKind
	}{
		{"https://ex.com/", domain.KindInternal},
		{"https://ex.com/page.html", domain.KindInternal},
		{"https://ex.com/logo.PNG", domain.KindExternal},
		{"https://ex.com/app.js", domain.KindExternal},
		{"https://other.com/", domain.KindExternal},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := c.Classify(mustParse(t, tt.raw)); got != tt.kind {
				t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.kind)
			}
		})
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		raw         string
		contentType string
		want        bool
	}{
		{"https://ex.com/", "", true},
		{"https://ex.com/", "text/html; charset=utf-8", true},
		{"https://ex.com/", "TEXT/HTML", true},
		{"https://ex.com/feed", "application/rss+xml", false},
		{"https://ex.com/font.woff2", "", false},
		{"https://ex.com/style.css", "text/html", false},
		{"https://ex.com/data.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw+" "+tt.contentType, func(t *testing.T) {
			if got := LooksLikeHTML(mustParse(t, tt.raw), tt.contentType); got != tt.want {
				t.Errorf("LooksLikeHTML(%q, %q) = %v, want %v", tt.raw, tt.contentType, got, tt.want)
			}
		})
	}
}
