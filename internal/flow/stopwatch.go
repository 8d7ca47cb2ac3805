package flow

import (
	"fmt"
	"sync"
	"time"
)

// Stopwatch measures elapsed flow time. It only accumulates while running.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	running bool
	started time.Time
	total   time.Duration
}

// NewStopwatch creates a stopped stopwatch. A nil clock uses time.Now.
func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.started = s.now()
}

func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.total += s.now().Sub(s.started)
	s.running = false
}

// Reset zeroes the counter and leaves the stopwatch stopped.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.total = 0
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Elapsed returns the accumulated time truncated to whole seconds.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.total
	if s.running {
		total += s.now().Sub(s.started)
	}
	return total.Truncate(time.Second)
}

// FormatElapsed renders d as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
