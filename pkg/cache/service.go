package cache

import "time"

// CacheService abstracts the in-memory cache holding surcharge rates and the
// carrier listing. Reference data is read-heavy and changes out-of-band, so a
// TTL cache in front of the DB is enough.
type CacheService interface {
	// Get returns the cached value and whether it was present.
	Get(key string) (interface{}, bool)

	// Set stores a value for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// Flush drops everything, mainly for tests.
	Flush()
}
