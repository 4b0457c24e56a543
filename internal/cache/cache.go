// Package cache implements the content-addressed result cache. Keys are
// derived from the normalized query text, namespaced so that fallback
// results can never collide with local ones.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Namespaces baked into the key hash input.
const (
	NamespaceLocal = "local"
	NamespaceAI    = "ai"
)

// Cache defines the interface for result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Normalize canonicalizes query text before hashing so that trivially
// different selections of the same text share a cache entry.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Key generates a stable content-addressed cache key. The namespace is part
// of the hash input, so identical text queried locally and via the fallback
// produces distinct keys.
func Key(namespace, text string) string {
	hash := sha256.Sum256([]byte(namespace + ":" + text))
	return "answerfinder:v1:" + hex.EncodeToString(hash[:])
}
