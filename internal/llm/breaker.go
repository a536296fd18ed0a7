// internal/llm/breaker.go
package llm

import (
	"sync"
	"time"
)

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

// breaker stops hammering the completion service once it keeps failing.
// After maxFailures consecutive errors calls are rejected until
// resetTimeout has passed; the next call then probes the service and a
// success closes the breaker again.
type breaker struct {
	mu           sync.Mutex
	maxFailures  int
	resetTimeout time.Duration

	state       breakerState
	failures    int
	lastFailure time.Time
}

func newBreaker(maxFailures int, resetTimeout time.Duration) *breaker {
	return &breaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        breakerClosed,
	}
}

func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if time.Since(b.lastFailure) > b.resetTimeout {
			b.state = breakerHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

func (b *breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.state = breakerClosed
		b.failures = 0
		return
	}

	b.failures++
	b.lastFailure = time.Now()
	if b.state == breakerHalfOpen || b.failures >= b.maxFailures {
		b.state = breakerOpen
	}
}
