package storefront

import (
	"context"
	"sync"
)

// Sequencer hands out increasing request tokens. Starting a request cancels
// the one before it, and only the holder of the latest token may publish its
// response.
type Sequencer struct {
	mu     sync.Mutex
	last   uint64
	cancel context.CancelFunc
}

// Begin cancels the in-flight request, if any, and returns the context and
// token of the new one.
func (s *Sequencer) Begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.last++
	return ctx, s.last
}

func (s *Sequencer) IsLatest(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token == s.last
}

// Finish releases the context of token when it is still the latest.
func (s *Sequencer) Finish(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.last && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
