package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// TokenLimiter bounds the number of tokens consumed per minute. The budget
// refills continuously, so no minute-long span admits more than the limit.
type TokenLimiter struct {
	maxPerMin int
	limiter   *rate.Limiter
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
// A non-positive limit disables limiting.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	l := &TokenLimiter{maxPerMin: maxPerMinute}
	if maxPerMinute > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(float64(maxPerMinute)/60), maxPerMinute)
	}
	return l
}

// Wait blocks until n tokens are available or ctx is done.
func (l *TokenLimiter) Wait(ctx context.Context, n int) error {
	if l.limiter == nil {
		return nil
	}
	if n > l.maxPerMin {
		return fmt.Errorf("request of %d tokens exceeds per-minute limit of %d", n, l.maxPerMin)
	}
	if err := l.limiter.WaitN(ctx, n); err != nil {
		return fmt.Errorf("failed to wait for %d tokens: %w", n, err)
	}
	return nil
}

// GetRemaining returns the tokens available right now.
func (l *TokenLimiter) GetRemaining() int {
	if l.limiter == nil {
		return 0
	}
	remaining := int(l.limiter.Tokens())
	if remaining < 0 {
		return 0
	}
	return remaining
}
