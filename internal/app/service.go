// Package service provides the lobby service that implements the
// dependencies required by the HTTP layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lobby/internal/adapters/repository"
	"github.com/okian/lobby/internal/domain/catalog"
	"github.com/okian/lobby/internal/domain/model"
	"github.com/okian/lobby/internal/domain/prediction"
	"github.com/okian/lobby/internal/domain/roster"
	"github.com/okian/lobby/pkg/logger"
	"github.com/okian/lobby/pkg/metrics"
)

// CatalogLoader fetches the champion catalog once at startup.
type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

// Service owns the catalog, the sessions and the predictor.
type Service struct {
	mu sync.RWMutex

	loader    CatalogLoader
	predictor prediction.Predictor
	store     repository.Store
	catalog   catalog.Catalog

	// Configuration
	seed            uint64
	sessionCapacity int
	sessionTTL      time.Duration
	now             func() time.Time
	newID           func() string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalogLoader sets the catalog source. Required.
func WithCatalogLoader(l CatalogLoader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithPredictor replaces the constant predictor.
func WithPredictor(p prediction.Predictor) Option {
	return func(s *Service) {
		if p != nil {
			s.predictor = p
		}
	}
}

// WithStore replaces the in-memory session store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithSeed sets the seed used for every initial roster.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.seed = seed }
}

// WithSessionCapacity bounds the default session store.
func WithSessionCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionCapacity = n
		}
	}
}

// WithSessionTTL expires idle sessions in the default store.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		predictor:       prediction.NewConstantPredictor(),
		seed:            1,
		sessionCapacity: 1_000,
		sessionTTL:      time.Hour,
		now:             time.Now,
		newID:           func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog and checks a roster can be drawn from it. Any
// error here is fatal for the process.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.loader == nil {
		return fmt.Errorf("%w: no catalog loader configured", catalog.ErrCatalogUnavailable)
	}

	s.logger.Info(ctx, "starting lobby service...")

	cat, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	if _, err := s.sample(cat); err != nil {
		return err
	}
	s.catalog = cat

	if s.store == nil {
		s.store = repository.NewLRUStore(ctx,
			repository.WithCapacity(s.sessionCapacity),
			repository.WithTTL(s.sessionTTL),
			repository.WithOnEvict(func(id string) {
				s.logger.Debug(context.Background(), "session evicted", logger.String("session", id))
			}),
		)
	}

	s.started = true
	s.logger.Info(ctx, "lobby service started",
		logger.Int("champions", cat.Len()),
		logger.Int("rosterSize", roster.Size),
		logger.Int("sessionCapacity", s.sessionCapacity),
	)
	return nil
}

// Stop drops every session.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "lobby service stopped")
}

// Catalog returns the loaded catalog.
func (s *Service) Catalog() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// sample draws an initial roster from a source seeded identically for every
// call, so all sessions start from the same proposal.
func (s *Service) sample(cat catalog.Catalog) (*roster.Roster, error) {
	rng := rand.New(rand.NewPCG(s.seed, s.seed)) //nolint:gosec // reproducible demo rosters
	return roster.Sample(cat, roster.Size, rng)
}

// NewSession creates a session holding a freshly sampled roster.
func (s *Service) NewSession(ctx context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	r, err := s.sample(s.catalog)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &model.Session{
		ID:        s.newID(),
		Roster:    r,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	metrics.RecordSessionCreated()
	s.logger.Debug(ctx, "session created",
		logger.String("session", sess.ID),
		logger.Strings("roster", r.Champions()),
	)
	return sess.Clone(), nil
}

// Session returns a snapshot of the session with id.
func (s *Service) Session(ctx context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// SessionOrNew returns the session with id, creating a new one when id is
// empty, unknown or expired. created reports which case happened.
func (s *Service) SessionOrNew(ctx context.Context, id string) (sess *model.Session, created bool, err error) {
	if id != "" {
		sess, err = s.Session(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}
	sess, err = s.NewSession(ctx)
	return sess, err == nil, err
}

// Select assigns champion to a slot. Any shown prediction is cleared so the
// page reflects the new roster until the button is pressed again.
func (s *Service) Select(ctx context.Context, id string, key roster.SlotKey, champion string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before, err := sess.Roster.Slot(key)
	if err != nil {
		return nil, err
	}
	if err := sess.Roster.Select(key, champion, s.catalog); err != nil {
		return nil, err
	}
	if before.Champion != champion {
		sess.Prediction = nil
	}
	sess.UpdatedAt = s.now()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	metrics.RecordSelection(string(before.Team))
	if before.Champion != champion && sess.Roster.Shared(key) {
		metrics.RecordDuplicateSelection()
		s.logger.Debug(ctx, "selection duplicates another pick",
			logger.String("session", id),
			logger.String("slot", string(key)),
			logger.String("champion", champion),
		)
	}
	return sess.Clone(), nil
}

// Predict runs the predictor on the session roster and remembers the verdict.
func (s *Service) Predict(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.predictor.Predict(ctx, sess.Roster.Clone())
	if err != nil {
		return nil, err
	}
	sess.Prediction = &res
	sess.UpdatedAt = s.now()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	metrics.RecordPrediction(res.Winner)
	return sess.Clone(), nil
}

// Reset replaces the session roster with a fresh initial proposal.
func (s *Service) Reset(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.sample(s.catalog)
	if err != nil {
		return nil, err
	}
	sess.Roster = r
	sess.Prediction = nil
	sess.UpdatedAt = s.now()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"seed":            s.seed,
		"rosterSize":      roster.Size,
		"sessionCapacity": s.sessionCapacity,
	}
	if s.started {
		n := s.store.Count(context.Background())
		stats["champions"] = s.catalog.Len()
		stats["sessions"] = n
		metrics.UpdateActiveSessions(n)
	}
	return stats
}

func (s *Service) ready() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}
