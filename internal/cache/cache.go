// Package cache memoizes completeness verdicts so identical
// (entity, predicate, values) items are judged once per process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from ordered parts. Parts are length-prefixed so
// ("ab", "c") and ("a", "bc") never collide.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		n := uint64(len(p))
		for i := range lenBuf {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write([]byte(p))
	}
	return "ontologica:v1:" + namespace + ":" + hex.EncodeToString(h.Sum(nil))
}
