// Package cache provides the blob stores that back dashboard persistence.
//
// A [Cache] maps string keys to opaque byte slices with an optional TTL.
// Implementations:
//   - [FileCache]: one file per key under a directory, for the CLI
//   - [MemoryCache]: process-local map, for tests and the HTTP server
//   - [RedisCache]: shared storage for several server instances
//
// Keys are built by a [Keyer] so every backend lays out dashboards the same
// way. [ScopedKeyer] adds a prefix, which keeps several deployments apart
// inside one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized documents.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A missing or expired key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds storage keys.
type Keyer interface {
	// DashboardKey is the key of a profile's current dashboard document.
	DashboardKey(profile string) string

	// BackupKey is the key of the last readable document a save replaced.
	BackupKey(profile string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DashboardKey returns "dashboard:<profile>".
func (DefaultKeyer) DashboardKey(profile string) string {
	return "dashboard:" + profile
}

// BackupKey returns "dashboard-backup:<profile>".
func (DefaultKeyer) BackupKey(profile string) string {
	return "dashboard-backup:" + profile
}
