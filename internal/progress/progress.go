// Package progress draws the live "Checking: <url>" line on a terminal.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// DefaultInterval is how often the line is redrawn.
const DefaultInterval = 100 * time.Millisecond

// Spinner redraws one line with the URL most recently reported through
// Checking. It implements domain.ProgressNotifier.
type Spinner struct {
	out      io.Writer
	interval time.Duration

	mu      sync.Mutex
	current string
	frame   int
	started bool

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// New creates a spinner writing to out. It draws nothing until Start.
func New(out io.Writer, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Spinner{
		out:      out,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Checking records the URL being checked. It never blocks on output.
func (s *Spinner) Checking(rawURL string) {
	s.mu.Lock()
	s.current = rawURL
	s.mu.Unlock()
}

// Start begins redrawing in the background.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go s.loop()
}

// Stop ends redrawing and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()

		close(s.stop)
		if started {
			<-s.done
		}
		fmt.Fprint(s.out, "\r\033[K")
	})
}

func (s *Spinner) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.draw()
		case <-s.stop:
			return
		}
	}
}

func (s *Spinner) draw() {
	s.mu.Lock()
	current := s.current
	frame := frames[s.frame%len(frames)]
	s.frame++
	s.mu.Unlock()

	if current == "" {
		return
	}
	fmt.Fprintf(s.out, "\r\033[K%s Checking: %s", frame, current)
}
