// Package cache stores extraction payloads keyed by document content,
// so re-running a batch over unchanged directives skips the provider
// call entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the extraction cache interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key from the assembled document text. Keying on
// content rather than file path means a re-issued directive with the
// same filename never serves a stale extraction.
func Key(documentText string) string {
	hash := sha256.Sum256([]byte(documentText))
	return "adscan:v1:" + hex.EncodeToString(hash[:])
}
