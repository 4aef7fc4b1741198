// Package cache stores rendered gauge artifacts and live gauge definitions.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer] so the hashing scheme stays in one place:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(configTOML), cache.ArtifactKeyOpts{Format: "svg", Value: 42})
//	data, ok, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A zero ttl never expires.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLArtifact bounds how long a rendered artifact is reused.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLGauge is zero: live gauge definitions are kept until deleted.
	TTLGauge time.Duration = 0
)
