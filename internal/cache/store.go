// Package cache provides the key/value layer that fronts the relational
// store. Entries are disposable, JSON-encoded views with a per-key TTL; the
// database always wins on any disagreement. Every operation is best-effort:
// a backend failure degrades to a cache miss and is never surfaced to the
// calling workflow.
package cache

import (
	"context"
	"time"
)

// Store is the cache capability injected into the workflows. Implementations
// must never return errors to callers; failures are logged internally and
// reads degrade to misses.
type Store interface {
	// Get unmarshals the entry for key into dest and reports whether a
	// live entry was found.
	Get(ctx context.Context, key string, dest any) bool
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string)
	// DeleteMatching removes every key matching a glob pattern.
	DeleteMatching(ctx context.Context, pattern string)
}

// EventsPublicKey caches the public newest-events listing.
const EventsPublicKey = "events:public"

// EventKey caches a single event by id.
func EventKey(eventID string) string { return "event:" + eventID }

// EventStatsKey caches the statistics view for an event.
func EventStatsKey(eventID string) string { return "event:" + eventID + ":stats" }

// RegisteredUsersKey caches the registrant listing for an event.
func RegisteredUsersKey(eventID string) string { return "event:" + eventID + ":users" }

// EventsByCreatorKey caches a creator's newest-events listing.
func EventsByCreatorKey(userID string) string { return "events:user:" + userID }

// EventScopedPattern matches every derived view keyed under one event
// (statistics, registrant listing). The bare "event:<id>" entry is not
// covered and must be deleted explicitly.
func EventScopedPattern(eventID string) string { return "event:" + eventID + ":*" }
