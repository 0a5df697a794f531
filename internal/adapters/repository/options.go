package repository

import "time"

// Option applies a configuration option to the LRUStore.
type Option func(*LRUStore)

// WithCapacity bounds the number of sessions; the least recently used one is
// evicted first.
func WithCapacity(n int) Option {
	return func(s *LRUStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithTTL expires sessions that were not written for d.
func WithTTL(d time.Duration) Option {
	return func(s *LRUStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithOnEvict registers a callback fired when a session leaves the store.
func WithOnEvict(fn func(id string)) Option {
	return func(s *LRUStore) {
		s.onEvict = fn
	}
}
