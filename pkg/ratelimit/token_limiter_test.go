package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiter_WithinBudget(t *testing.T) {
	l := NewTokenLimiter(100)
	require.NoError(t, l.Wait(context.Background(), 60))
	assert.Equal(t, 40, l.GetRemaining())
}

func TestTokenLimiter_BlocksUntilContextDone(t *testing.T) {
	l := NewTokenLimiter(100)
	require.NoError(t, l.Wait(context.Background(), 90))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, 20))
}

func TestTokenLimiter_NoBurstAcrossMinuteBoundary(t *testing.T) {
	l := NewTokenLimiter(1000)
	start := time.Now()

	assert.True(t, l.limiter.AllowN(start.Add(59900*time.Millisecond), 1000))
	assert.False(t, l.limiter.AllowN(start.Add(60100*time.Millisecond), 1000))
	assert.True(t, l.limiter.AllowN(start.Add(119900*time.Millisecond), 1000))
}

func TestTokenLimiter_FullBudgetThenWaitTimesOut(t *testing.T) {
	l := NewTokenLimiter(1000)
	require.NoError(t, l.Wait(context.Background(), 1000))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, 1000))
	assert.Less(t, l.GetRemaining(), 1000)
}

func TestTokenLimiter_Oversized(t *testing.T) {
	l := NewTokenLimiter(10)
	assert.Error(t, l.Wait(context.Background(), 11))
}

func TestTokenLimiter_Disabled(t *testing.T) {
	l := NewTokenLimiter(0)
	assert.NoError(t, l.Wait(context.Background(), 1_000_000))
	assert.Equal(t, 0, l.GetRemaining())
}
