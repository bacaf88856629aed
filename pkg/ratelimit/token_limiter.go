package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenLimiter is a per-minute token budget. Wait blocks until the requested tokens fit in the current window.
type TokenLimiter struct {
	mu          sync.Mutex
	maxPerMin   int
	used        int
	windowStart time.Time
	now         func() time.Time
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per rolling minute window.
// A non-positive maxPerMinute disables limiting.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin:   maxPerMinute,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait reserves tokens, sleeping until the next window when the budget is exhausted.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if l.maxPerMin <= 0 {
		return nil
	}
	if tokens > l.maxPerMin {
		return fmt.Errorf("request of %d tokens exceeds the per-minute limit of %d", tokens, l.maxPerMin)
	}

	for {
		l.mu.Lock()
		now := l.now()
		if now.Sub(l.windowStart) >= time.Minute {
			l.windowStart = now
			l.used = 0
		}
		if l.used+tokens <= l.maxPerMin {
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Minute - now.Sub(l.windowStart)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.now().Sub(l.windowStart) >= time.Minute {
		return l.maxPerMin
	}
	return l.maxPerMin - l.used
}
