// Package frontier holds the pending work and the visited set of one crawl.
package frontier

import (
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/linkcheck/internal/domain"
)

// Frontier is the FIFO queue of discovered URLs awaiting dispatch.
// It is safe for concurrent use; workers push while the dispatcher drains.
type Frontier struct {
	mu      sync.Mutex
	entries []domain.FrontierEntry

	discovered atomic.Int64
}

// New creates an empty frontier.
func New() *Frontier {
	return &Frontier{}
}

// Seed enqueues the crawl's start URL, which has no referrer.
func (f *Frontier) Seed(start *url.URL) {
	f.Push(domain.FrontierEntry{URL: start})
}

// Push appends entries in order.
func (f *Frontier) Push(entries ...domain.FrontierEntry) {
	if len(entries) == 0 {
		return
	}
	f.mu.Lock()
	f.entries = append(f.entries, entries...)
	f.mu.Unlock()
	f.discovered.Add(int64(len(entries)))
}

// Drain removes and returns up to max entries from the head of the queue.
func (f *Frontier) Drain(max int) []domain.FrontierEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := min(max, len(f.entries))
	if n <= 0 {
		return nil
	}
	batch := make([]domain.FrontierEntry, n)
	copy(batch, f.entries[:n])

	// Drop references so drained URLs can be collected.
	clear(f.entries[:n])
	f.entries = f.entries[n:]
	if len(f.entries) == 0 {
		f.entries = nil
	}
	return batch
}

// Len returns the number of pending entries.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Discovered returns how many entries were ever pushed, duplicates included.
func (f *Frontier) Discovered() int64 {
	return f.discovered.Load()
}
