package catalog

import (
	"context"
	"sync"
	"time"
)

// Sequencer numbers the fetches of one page instance. Only the most recently
// started fetch may publish its result; starting a fetch cancels the previous
// one.
type Sequencer struct {
	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

// Ticket identifies one started fetch.
type Ticket struct {
	gen    uint64
	seq    *Sequencer
	cancel context.CancelFunc
}

// Begin starts a new generation bounded by timeout and returns its context.
func (s *Sequencer) Begin(ctx context.Context, timeout time.Duration) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.current++
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	s.cancel = cancel
	return fetchCtx, Ticket{gen: s.current, seq: s, cancel: cancel}
}

// Generation returns the number of the latest started fetch.
func (s *Sequencer) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (t Ticket) Generation() uint64 { return t.gen }

// Current reports whether no newer fetch has started since t.
func (t Ticket) Current() bool {
	t.seq.mu.Lock()
	defer t.seq.mu.Unlock()
	return t.seq.current == t.gen
}

// Done releases the fetch context.
func (t Ticket) Done() {
	t.cancel()
	t.seq.mu.Lock()
	defer t.seq.mu.Unlock()
	if t.seq.current == t.gen {
		t.seq.cancel = nil
	}
}
