package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/canvasnap/pkg/observability"
)

// MemoryStore keeps sessions in a map. Stored values are copied on the way
// in and out so callers can mutate what they get back.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "memory", "session", "get", time.Since(start), nil) }()

	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if sess.IsExpired() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}
	return clone(sess), nil
}

func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "memory", "session", "put", time.Since(start), nil) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *clone(*sess)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	defer func() { observability.Store().OnStoreOp(ctx, "memory", "session", "delete", time.Since(start), nil) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Cleanup removes expired sessions.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) Close() error { return nil }

// clone copies the memory slice so stored state is never aliased.
func clone(sess Session) *Session {
	out := sess
	if sess.State.Memory != nil {
		out.State.Memory = append(out.State.Memory[:0:0], sess.State.Memory...)
	}
	return &out
}

var _ Store = (*MemoryStore)(nil)
