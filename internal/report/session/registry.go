// internal/report/session/registry.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"report-writer/internal/common/errors"
	"report-writer/internal/common/logger"
	"report-writer/internal/common/metrics"
)

// Factory builds a session for a freshly allocated id.
type Factory func(id string) *Session

// Registry holds live sessions in memory. Sessions idle for longer than the
// TTL are evicted by Run; a session with a pending generation is never evicted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
	idleTTL  time.Duration
	logger   logger.Logger
}

func NewRegistry(factory Factory, idleTTL time.Duration, log logger.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		factory:  factory,
		idleTTL:  idleTTL,
		logger:   log.With(map[string]interface{}{"component": "session_registry"}),
	}
}

func (r *Registry) Create() *Session {
	s := r.factory(uuid.NewString())

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	metrics.SessionsActive.Inc()
	r.logger.Debug("session created", map[string]interface{}{"sessionId": s.ID()})
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.NewSessionNotFoundError(id)
	}
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return errors.NewSessionNotFoundError(id)
	}
	s.Close()
	metrics.SessionsActive.Dec()
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict drops sessions idle since before now minus the TTL and returns how many
// were removed.
func (r *Registry) Evict(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.Busy() || s.LastActive().After(cutoff) {
			continue
		}
		expired = append(expired, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		metrics.SessionsActive.Dec()
		r.logger.Info("session expired", map[string]interface{}{"sessionId": s.ID()})
	}
	return len(expired)
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Evict(now)
		}
	}
}

// Shutdown closes every session.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
		metrics.SessionsActive.Dec()
	}
}
