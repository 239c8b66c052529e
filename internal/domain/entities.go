package domain

import (
	"fmt"
	"net/url"
	"time"
)

// FrontierEntry is a discovered URL waiting to be processed.
// Referrer is nil for the seed.
type FrontierEntry struct {
	URL      *url.URL
	Referrer *url.URL
}

// ReferrerString returns the referrer as text, or "" for the seed.
func (e FrontierEntry) ReferrerString() string {
	if e.Referrer == nil {
		return ""
	}
	return e.Referrer.String()
}

// LinkKind selects how a dispatched URL is handled. It is decided once by the
// classifier and carried unchanged through fetch, aggregation and reporting.
type LinkKind int

const (
	// KindInternal URLs are fetched and, when HTML, parsed for further links.
	KindInternal LinkKind = iota
	// KindExternal URLs are checked through the link validator and never parsed.
	KindExternal
)

func (k LinkKind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// MarshalText lets LinkKind appear as a word in JSON and CSV reports.
func (k LinkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText reads the words written by MarshalText.
func (k *LinkKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "internal":
		*k = KindInternal
	case "external":
		*k = KindExternal
	default:
		return fmt.Errorf("unknown link kind %q", text)
	}
	return nil
}

// SkipReason names an uncounted terminal state of a discovered URL.
type SkipReason string

// Skip reasons. None of these increment a counter.
const (
	SkipScheme       SkipReason = "scheme"
	SkipDepth        SkipReason = "depth"
	SkipVisited      SkipReason = "visited"
	SkipInternalOnly SkipReason = "internal_only"
)

// Outcome is the result of one dispatched network operation.
// A successful internal HTML fetch additionally carries the links it discovered.
type Outcome struct {
	Kind       LinkKind
	StatusCode int
	Err        error
	Duration   time.Duration
	Links      []FrontierEntry
}

// OK reports whether the outcome counts as a success.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// LinkResult is the reportable record of one counted check.
type LinkResult struct {
	// URL is the checked link.
	URL string `json:"url"`
	// Referrer is the page the link was found on; empty for the start URL.
	Referrer string `json:"referrer,omitempty"`
	// Kind is "internal" or "external".
	Kind LinkKind `json:"kind"`
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int `json:"status_code"`
	// Error holds the failure reason, empty on success.
	Error string `json:"error,omitempty"`
	// OK is true for a Success outcome.
	OK bool `json:"ok"`
	// LinksFound is how many candidate links an internal HTML page yielded.
	LinksFound int `json:"links_found"`
	// Duration is the wall time of the network operation.
	Duration time.Duration `json:"duration"`
}

// Report is the final output of one crawl.
type Report struct {
	RunID      string        `json:"run_id"`
	BaseURL    string        `json:"base_url"`
	StartURL   string        `json:"start_url"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Waves      int           `json:"waves"`
	Total      int64         `json:"total"`
	Successful int64         `json:"successful"`
	Failed     int64         `json:"failed"`
	Passed     bool          `json:"passed"`
	Results    []LinkResult  `json:"results"`
}

// Failures returns the failed results grouped by referrer, preserving
// first-seen order of referrers.
func (r *Report) Failures() ([]string, map[string][]LinkResult) {
	order := make([]string, 0)
	byReferrer := make(map[string][]LinkResult)
	for _, res := range r.Results {
		if res.OK {
			continue
		}
		if _, seen := byReferrer[res.Referrer]; !seen {
			order = append(order, res.Referrer)
		}
		byReferrer[res.Referrer] = append(byReferrer[res.Referrer], res)
	}
	return order, byReferrer
}
