// Package cache provides the process-wide result cache: a key/value store
// with per-entry expiration checked lazily on read.
package cache

import "time"

// Reader defines the interface for reading cache entries
type Reader interface {
	// Get returns the value for key and true if present and not expired.
	// An expired entry is removed and reported as absent.
	Get(key string) (any, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Put stores value under key for ttl, overwriting any previous entry
	Put(key string, value any, ttl time.Duration)
}

// Cache combines both cache operations
type Cache interface {
	Reader
	Writer
}
