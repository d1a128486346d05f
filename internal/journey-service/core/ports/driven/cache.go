package driven

import "time"

type CacheStats struct {
	Entries int
	Fresh   int
	Stale   int
}

// IJourneyCache stores serialized journey responses keyed by rounded
// origin/destination. Values are idempotent per key, so write races between
// concurrent identical searches are harmless.
type IJourneyCache interface {
	Get(key string) ([]byte, bool)
	SetWithTTL(key string, value []byte, ttl time.Duration)
	Stats() CacheStats
}
