// Package session keeps snap engines alive between drag events.
//
// An align.Engine owns the hysteresis memory of one canvas. Callers that
// cannot hold an engine in memory across requests (the HTTP API, several
// server instances behind a load balancer) store its State here instead and
// restore it on every snap.
//
// # Backends
//
//   - MemoryStore: in-process storage for tests and a single server
//   - FileStore: one JSON file per session, used by the CLI drag mode
//   - RedisStore: shared storage for multi-instance deployments (last write wins)
//
// # Usage
//
//	store := session.NewMemoryStore()
//	mgr := session.NewManager(store, session.WithTTL(time.Hour))
//
//	sess, err := mgr.Create(ctx, "wheel", nil)
//	res, err := mgr.Snap(ctx, sess.ID, element, others, canvas, zoom)
//
// Each session owns exactly one engine, so hysteresis never leaks between
// canvases. A Manager serializes calls per session within its own process
// only; see [Manager] for what that means with a shared RedisStore.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 24 * time.Hour

// Session is a stored snap engine bound to one canvas.
type Session struct {
	ID        string      `json:"id"`
	SceneID   string      `json:"scene_id,omitempty"`
	State     align.State `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// New creates a session with a random id and the given settings.
func New(sceneID string, settings align.Settings, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		SceneID:   sceneID,
		State:     align.State{Settings: settings},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Settings returns the engine settings stored with the session.
func (s *Session) Settings() align.Settings { return s.State.Settings }

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session lifetime by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().UTC().Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session until its ExpiresAt.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
}
