// Package cache provides small key/value caches with per-entry expiry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values until their TTL elapses. There is no eviction
// other than expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Noop never stores anything. Every Get is a miss.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
