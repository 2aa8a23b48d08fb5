package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/observability"
)

// Manager runs snaps against stored sessions. Operations on the same session
// are serialized within one Manager; different sessions proceed in parallel.
//
// Serialization is per process. Managers in different processes sharing a
// RedisStore do not lock each other out, so concurrent snaps of one session
// across instances resolve last write wins on its hysteresis memory. Route a
// session's requests to one instance when that matters.
type Manager struct {
	store      Store
	ttl        time.Duration
	defaults   align.Settings
	killSwitch func() bool
	logger     *log.Logger
	locks      keyedMutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL sets the idle lifetime of sessions.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = ttl }
}

// WithDefaults sets the settings new sessions start with.
func WithDefaults(s align.Settings) ManagerOption {
	return func(m *Manager) { m.defaults = s }
}

// WithKillSwitch is passed to every restored engine.
func WithKillSwitch(fn func() bool) ManagerOption {
	return func(m *Manager) { m.killSwitch = fn }
}

// WithManagerLogger sets the logger handed to restored engines.
func WithManagerLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager on top of store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:    store,
		ttl:      DefaultTTL,
		defaults: align.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	return m
}

// Create starts a session for sceneID. A nil settings uses the manager
// defaults.
func (m *Manager) Create(ctx context.Context, sceneID string, settings *align.Settings) (*Session, error) {
	s := m.defaults
	if settings != nil {
		s = *settings
	}
	sess := New(sceneID, s, m.ttl)
	if err := m.store.Set(ctx, sess); err != nil {
		return nil, err
	}
	observability.Snap().OnSessionCreated(ctx, sess.ID)
	m.logger.Debug("session created", "id", sess.ID, "scene", sceneID)
	return sess, nil
}

// Get returns a live session or an ErrCodeSessionNotFound error.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, notFound(id)
	}
	return sess, nil
}

// Snap restores the session engine, snaps element and stores the updated
// hysteresis memory. The session lifetime is extended on every call.
func (m *Manager) Snap(ctx context.Context, id string, element geom.ElementBounds, others []geom.ElementBounds, canvas geom.CanvasInfo, zoom float64) (align.SnapResult, error) {
	var res align.SnapResult
	err := m.update(ctx, id, func(sess *Session) error {
		start := time.Now()
		eng := m.engine(sess)
		res = eng.CalculateSnap(element, others, canvas, zoom)
		sess.State = eng.State()
		observability.Snap().OnSnap(ctx, id, element.ID, res.Snapped, len(res.Guides), time.Since(start))
		return nil
	})
	return res, err
}

// Configure replaces the session settings, evicting memory past the new
// MaxTracked.
func (m *Manager) Configure(ctx context.Context, id string, settings align.Settings) (*Session, error) {
	var out *Session
	err := m.update(ctx, id, func(sess *Session) error {
		eng := m.engine(sess)
		eng.Apply(settings)
		sess.State = eng.State()
		out = sess
		return nil
	})
	return out, err
}

// Forget drops the hysteresis memory of one element.
func (m *Manager) Forget(ctx context.Context, id, elementID string) error {
	return m.update(ctx, id, func(sess *Session) error {
		eng := m.engine(sess)
		eng.Forget(elementID)
		sess.State = eng.State()
		return nil
	})
}

// Close ends a session. Closing an unknown session is not an error.
func (m *Manager) Close(ctx context.Context, id string) error {
	unlock := m.locks.lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	observability.Snap().OnSessionClosed(ctx, id)
	m.logger.Debug("session closed", "id", id)
	return nil
}

// update loads a session under its lock, applies fn and writes it back.
func (m *Manager) update(ctx context.Context, id string, fn func(*Session) error) error {
	unlock := m.locks.lock(id)
	defer unlock()

	sess, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		return err
	}
	sess.Touch(m.ttl)
	return m.store.Set(ctx, sess)
}

func (m *Manager) engine(sess *Session) *align.Engine {
	opts := []align.Option{align.WithState(sess.State), align.WithLogger(m.logger)}
	if m.killSwitch != nil {
		opts = append(opts, align.WithKillSwitch(m.killSwitch))
	}
	return align.New(opts...)
}

// keyedMutex hands out one mutex per key and frees it when unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &refMutex{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
