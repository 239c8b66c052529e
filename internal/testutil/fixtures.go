// Package testutil provides shared test fixtures and utilities for use across test files.
package testutil

import (
	"time"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// SampleReport returns a finished crawl with two successes and two failures,
// one failure on each of two referring pages.
func SampleReport() *domain.Report {
	results := SampleResults()
	return &domain.Report{
		RunID:      "3f1c9a52-7d2e-4c1b-9a0e-5b8f6d2e1c47",
		BaseURL:    "http://example.com",
		StartURL:   "http://example.com",
		StartedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Duration:   2500 * time.Millisecond,
		Waves:      3,
		Total:      int64(len(results)),
		Successful: 2,
		Failed:     2,
		Passed:     false,
		Results:    results,
	}
}

// SampleResults returns the link records behind SampleReport.
func SampleResults() []domain.LinkResult {
	return []domain.LinkResult{
		{
			URL:        "http://example.com",
			Kind:       domain.KindInternal,
			StatusCode: 200,
			OK:         true,
			LinksFound: 3,
			Duration:   120 * time.Millisecond,
		},
		{
			URL:        "http://example.com/about",
			Referrer:   "http://example.com",
			Kind:       domain.KindInternal,
			StatusCode: 200,
			OK:         true,
			LinksFound: 1,
			Duration:   80 * time.Millisecond,
		},
		{
			URL:        "https://external.example.org/gone",
			Referrer:   "http://example.com",
			Kind:       domain.KindExternal,
			StatusCode: 404,
			Error:      "https://external.example.org/gone returned 404 Not Found",
			Duration:   300 * time.Millisecond,
		},
		{
			URL:        "http://example.com/missing",
			Referrer:   "http://example.com/about",
			Kind:       domain.KindInternal,
			StatusCode: 0,
			Error:      "request to http://example.com/missing failed: connection refused",
			Duration:   5 * time.Millisecond,
		},
	}
}

// PassingReport returns a crawl of a single page with no links.
func PassingReport() *domain.Report {
	return &domain.Report{
		RunID:      "b7e2d1c0-0000-4000-8000-000000000001",
		BaseURL:    "https://ex.com",
		StartURL:   "https://ex.com",
		StartedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Duration:   150 * time.Millisecond,
		Waves:      1,
		Total:      1,
		Successful: 1,
		Passed:     true,
		Results: []domain.LinkResult{
			{URL: "https://ex.com", Kind: domain.KindInternal, StatusCode: 200, OK: true},
		},
	}
}
