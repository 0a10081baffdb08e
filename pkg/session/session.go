// Package session provides the session token store.
//
// Session tokens are opaque strings mapped to a user identifier with a finite
// lifetime. The production implementation is Redis-backed; an in-memory
// implementation with the same expiry semantics exists for tests.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key is absent or has expired.
var ErrKeyNotFound = errors.New("session key not found")

// TokenTTL is the lifetime of a session token issued at login.
const TokenTTL = 24 * time.Hour

// authKeyPrefix namespaces session keys so the store can be shared with
// other key families.
const authKeyPrefix = "auth_"

// AuthKey returns the namespaced store key for a session token.
func AuthKey(token string) string {
	return authKeyPrefix + token
}

// Store is a key-value store with per-key TTL.
//
// Thread Safety: implementations must be safe for concurrent use from
// multiple goroutines.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound on a miss or an expired key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given TTL. A zero TTL stores the
	// key without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key from the store. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Healthcheck verifies the store is reachable.
	Healthcheck(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
