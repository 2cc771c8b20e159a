package config

import (
	"strings"
	"time"
)

// CacheConfig configures the Redis response cache in front of GET
// /api/version.  Every other route returns fresh random values or
// caller-specific data and is never cached.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // upper-case method names eligible for caching
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int // larger responses are served but not stored
}

// LoadCacheConfig reads CACHE_ENABLED, CACHE_METHODS (comma separated),
// CACHE_TTL, CACHE_PREFIX and CACHE_MAX_BODY_BYTES.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      methodSet(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 5*time.Minute),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<16),
	}
}

// Caches reports whether responses to method may be stored.
func (c CacheConfig) Caches(method string) bool {
	return c.Methods[strings.ToUpper(method)]
}

func methodSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, m := range strings.FieldsFunc(csv, func(r rune) bool { return r == ',' || r == ' ' }) {
		set[strings.ToUpper(m)] = true
	}
	return set
}
