// Package domain defines core domain types and interfaces for the link checker.
package domain

import (
	"context"
	"time"
)

// LinkValidator checks a single external link without following it.
// Implementations return the HTTP status code, or an error if no response was received.
type LinkValidator interface {
	Check(ctx context.Context, rawURL string) (int, error)
}

// TokenExtractor turns an HTML document into the raw values of its link
// attributes. It performs no resolution or filtering.
type TokenExtractor interface {
	Extract(html string) []string
}

// VisitedStore records normalized URL keys for the lifetime of one crawl.
type VisitedStore interface {
	// MarkVisited atomically checks and inserts key. It returns true if the
	// key was already present.
	MarkVisited(ctx context.Context, key string) (bool, error)

	// Len returns the number of keys recorded.
	Len(ctx context.Context) (int, error)
}

// RateLimiter defines the interface for rate limiting concurrent requests.
// Implementations control request throughput using token bucket or similar algorithms.
type RateLimiter interface {
	// Wait blocks until a token is available or the context is canceled.
	Wait(ctx context.Context) error
}

// ProgressNotifier is told which URL is being checked. The crawl never
// depends on it.
type ProgressNotifier interface {
	Checking(rawURL string)
}

// Recorder receives crawl events for metrics. All methods must be safe for
// concurrent use.
type Recorder interface {
	CheckDone(kind LinkKind, ok bool, d time.Duration)
	Skipped(reason SkipReason)
	WaveDone(size int)
	FrontierSize(n int)
}
