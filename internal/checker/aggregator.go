package checker

import (
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// Aggregator counts outcomes and keeps their records for reporting.
// Counters are independent atomics; only the record list takes a lock.
type Aggregator struct {
	successful atomic.Int64
	failed     atomic.Int64

	mu      sync.Mutex
	results []domain.LinkResult
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{results: make([]domain.LinkResult, 0)}
}

// Record counts r exactly once, as a success or a failure.
func (a *Aggregator) Record(r domain.LinkResult) { //nolint:gocritic // LinkResult is copied into the list anyway
	if r.OK {
		a.successful.Add(1)
	} else {
		a.failed.Add(1)
	}

	a.mu.Lock()
	a.results = append(a.results, r)
	a.mu.Unlock()
}

// Successful returns the number of successes.
func (a *Aggregator) Successful() int64 { return a.successful.Load() }

// Failed returns the number of failures.
func (a *Aggregator) Failed() int64 { return a.failed.Load() }

// Total returns successful + failed.
func (a *Aggregator) Total() int64 { return a.Successful() + a.Failed() }

// Passed reports the verdict: no failures. A crawl with no checks passes.
func (a *Aggregator) Passed() bool { return a.Failed() == 0 }

// Results returns a copy of the records in completion order.
func (a *Aggregator) Results() []domain.LinkResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.LinkResult, len(a.results))
	copy(out, a.results)
	return out
}
