package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/okian/lobby/internal/domain/model"
	"github.com/okian/lobby/pkg/metrics"
)

const (
	defaultCapacity = 1_000
	defaultTTL      = time.Hour
)

// LRUStore keeps sessions in an expiring LRU cache.
type LRUStore struct {
	capacity int
	ttl      time.Duration
	onEvict  func(id string)
	lru      *expirable.LRU[string, *model.Session]
}

// NewLRUStore creates a bounded, expiring session store.
func NewLRUStore(_ context.Context, opts ...Option) *LRUStore {
	s := &LRUStore{
		capacity: defaultCapacity,
		ttl:      defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lru = expirable.NewLRU[string, *model.Session](s.capacity, s.evicted, s.ttl)
	return s
}

func (s *LRUStore) evicted(id string, _ *model.Session) {
	if s.onEvict != nil {
		s.onEvict(id)
	}
}

// Get implements Store.
func (s *LRUStore) Get(_ context.Context, id string) (*model.Session, error) {
	sess, ok := s.lru.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return sess, nil
}

// Put implements Store.
func (s *LRUStore) Put(_ context.Context, sess *model.Session) error {
	if sess == nil || sess.ID == "" || sess.Roster == nil {
		return ErrInvalidSession
	}
	s.lru.Add(sess.ID, sess)
	metrics.UpdateActiveSessions(s.lru.Len())
	return nil
}

// Delete implements Store.
func (s *LRUStore) Delete(_ context.Context, id string) {
	s.lru.Remove(id)
	metrics.UpdateActiveSessions(s.lru.Len())
}

// Count implements Store.
func (s *LRUStore) Count(_ context.Context) int {
	return s.lru.Len()
}

// Close drops every session.
func (s *LRUStore) Close() error {
	s.lru.Purge()
	metrics.UpdateActiveSessions(0)
	return nil
}
