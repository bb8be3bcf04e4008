package config

import (
	"os"
	"time"
)

// CacheTTLConfig controls how long each family of cache entries lives.
// Statistics and registrant listings are the most write-sensitive views, so
// they get the shortest TTL. Proactive invalidation on writes happens on
// top of these lifetimes; the TTL only bounds staleness when an
// invalidation was missed or swallowed.
type CacheTTLConfig struct {
	Event time.Duration // single event by id
	Lists time.Duration // public and per-creator event listings
	Stats time.Duration // statistics and registrant listings
}

// LoadCacheTTLConfig reads environment variables to build a CacheTTLConfig.
// Defaults are used when variables are not set.
func LoadCacheTTLConfig() CacheTTLConfig {
	return CacheTTLConfig{
		Event: parseDur(getenv("CACHE_EVENT_TTL", "5m")),
		Lists: parseDur(getenv("CACHE_LIST_TTL", "2m")),
		Stats: parseDur(getenv("CACHE_STATS_TTL", "60s")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
