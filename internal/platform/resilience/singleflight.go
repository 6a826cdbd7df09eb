package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into one
// execution; waiters receive the leader's result.
type SingleFlight struct {
	mu     sync.Mutex
	flight map[string]*flightCall
}

type flightCall struct {
	done   chan struct{}
	value  any
	err    error
	shared bool
}

// Do runs fn once per key at a time. The boolean reports whether the
// caller received a result produced by another goroutine.
func (s *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	s.mu.Lock()
	if s.flight == nil {
		s.flight = make(map[string]*flightCall)
	}
	if c, ok := s.flight[key]; ok {
		c.shared = true
		s.mu.Unlock()
		<-c.done
		return c.value, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	s.flight[key] = c
	s.mu.Unlock()

	c.value, c.err = fn()

	s.mu.Lock()
	delete(s.flight, key)
	s.mu.Unlock()
	close(c.done)

	return c.value, c.err, false
}

// InFlight reports whether a call for key is currently running.
func (s *SingleFlight) InFlight(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flight[key]
	return ok
}
