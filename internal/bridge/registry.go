package bridge

import (
	"log/slog"
	"sync"

	"github.com/kinestex/kinestex-go/internal/payload"
)

// Registry keeps at most one live session per feature for features that
// must be singletons (the camera). Sessions leave the registry when
// disposed.
type Registry struct {
	mu   sync.Mutex
	live map[payload.Feature]*Session
	log  *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{live: make(map[payload.Feature]*Session), log: log}
}

// GetOrCreate returns the live session for feature, or registers the one
// built by create. The check and the insert happen under one lock, so
// concurrent callers never build two surfaces. create must not call back
// into the registry.
func (r *Registry) GetOrCreate(feature payload.Feature, create func() (*Session, error)) (s *Session, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.live[feature]; ok {
		r.log.Info("reusing live session", "feature", string(feature), "session", s.ID().String())
		return s, false, nil
	}
	s, err = create()
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	s.release = r.remove
	s.mu.Unlock()
	r.live[feature] = s
	return s, true, nil
}

// Lookup returns the live session for feature.
func (r *Registry) Lookup(feature payload.Feature) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.live[feature]
	return s, ok
}

// Release disposes the live session for feature, if any.
func (r *Registry) Release(feature payload.Feature) {
	if s, ok := r.Lookup(feature); ok {
		s.Dispose()
	}
}

// Close disposes every live session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.live))
	for _, s := range r.live {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Dispose()
	}
}

func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live[s.Feature()] == s {
		delete(r.live, s.Feature())
	}
}
