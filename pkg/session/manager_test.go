package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
	"github.com/matzehuels/canvasnap/pkg/observability"
)

var testCanvas = geom.NewCanvas(800, 600)

// box is 80 wide, so x=360 centers it horizontally on the canvas.
func box(id string, x float64) geom.ElementBounds {
	return geom.ElementBounds{ID: id, X: x, Y: 100, Width: 80, Height: 40}
}

func TestManagerCreateGet(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()

	sess, err := mgr.Create(ctx, "wheel", nil)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if sess.ID == "" || sess.Settings() != align.DefaultSettings() {
		t.Errorf("Create() = %+v", sess)
	}

	got, err := mgr.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.SceneID != "wheel" {
		t.Errorf("SceneID = %q, want wheel", got.SceneID)
	}
}

func TestManagerCreateWithSettings(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	s := align.DefaultSettings()
	s.ShowGrid = true

	sess, err := mgr.Create(context.Background(), "", &s)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !sess.Settings().ShowGrid {
		t.Error("Create() should use the given settings")
	}
}

func TestManagerUnknownSession(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()

	if _, err := mgr.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get() error = %v, want SESSION_NOT_FOUND", err)
	}
	if _, err := mgr.Snap(ctx, "nope", box("a", 0), nil, testCanvas, 1); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Snap() error = %v, want SESSION_NOT_FOUND", err)
	}
	if err := mgr.Forget(ctx, "nope", "a"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Forget() error = %v, want SESSION_NOT_FOUND", err)
	}
	if err := mgr.Close(ctx, "nope"); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestManagerExpiredSession(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), WithTTL(-time.Second))
	ctx := context.Background()

	sess, _ := mgr.Create(ctx, "", nil)
	if _, err := mgr.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(expired) error = %v, want SESSION_NOT_FOUND", err)
	}
}

func TestManagerSnapKeepsHysteresis(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)

	res, err := mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	if err != nil {
		t.Fatalf("Snap() error: %v", err)
	}
	if res.X != 360 || !res.Snapped {
		t.Fatalf("first Snap() = %+v, want x=360", res)
	}

	// 9 units away: outside the base tolerance, inside tolerance + bonus.
	res, _ = mgr.Snap(ctx, sess.ID, box("a", 369), nil, testCanvas, 1)
	if res.X != 360 {
		t.Errorf("second Snap() x = %v, want 360 held by hysteresis", res.X)
	}

	// A fresh session has no memory and releases at the same distance.
	fresh, _ := mgr.Create(ctx, "", nil)
	res, _ = mgr.Snap(ctx, fresh.ID, box("a", 369), nil, testCanvas, 1)
	if res.Snapped {
		t.Errorf("fresh session Snap() = %+v, want no snap", res)
	}
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	one, _ := mgr.Create(ctx, "", nil)
	two, _ := mgr.Create(ctx, "", nil)

	mgr.Snap(ctx, one.ID, box("a", 365), nil, testCanvas, 1)

	got, _ := mgr.Get(ctx, two.ID)
	if len(got.State.Memory) != 0 {
		t.Errorf("second session memory = %v, want empty", got.State.Memory)
	}
}

func TestManagerForget(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)

	mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	mgr.Snap(ctx, sess.ID, box("b", 362), nil, testCanvas, 1)

	if err := mgr.Forget(ctx, sess.ID, "a"); err != nil {
		t.Fatalf("Forget() error: %v", err)
	}
	got, _ := mgr.Get(ctx, sess.ID)
	if len(got.State.Memory) != 1 || got.State.Memory[0].ID != "b" {
		t.Errorf("memory after Forget = %v, want only b", got.State.Memory)
	}
}

func TestManagerConfigure(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)

	mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	mgr.Snap(ctx, sess.ID, box("b", 362), nil, testCanvas, 1)

	s := align.DefaultSettings()
	s.MaxTracked = 1
	s.Enabled = false
	got, err := mgr.Configure(ctx, sess.ID, s)
	if err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	if got.Settings() != s {
		t.Errorf("Settings() = %+v, want %+v", got.Settings(), s)
	}
	if len(got.State.Memory) != 1 || got.State.Memory[0].ID != "b" {
		t.Errorf("memory after Configure = %v, want only the most recent", got.State.Memory)
	}

	res, _ := mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	if res.Snapped {
		t.Error("disabled session should not snap")
	}
}

func TestManagerKillSwitch(t *testing.T) {
	var disabled bool
	mgr := NewManager(NewMemoryStore(), WithKillSwitch(func() bool { return disabled }))
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)

	disabled = true
	res, _ := mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	if res.Snapped || res.X != 365 {
		t.Errorf("Snap() with kill switch = %+v, want untouched", res)
	}

	disabled = false
	res, _ = mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)
	if !res.Snapped {
		t.Error("Snap() should resume once the kill switch clears")
	}
}

func TestManagerClose(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetSnapHooks(hooks)

	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)
	mgr.Snap(ctx, sess.ID, box("a", 365), nil, testCanvas, 1)

	if err := mgr.Close(ctx, sess.ID); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := mgr.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get() after Close error = %v", err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.created != 1 || hooks.snaps != 1 || hooks.closed != 1 {
		t.Errorf("hooks = created %d, snaps %d, closed %d; want 1 each", hooks.created, hooks.snaps, hooks.closed)
	}
}

func TestManagerConcurrentSnaps(t *testing.T) {
	mgr := NewManager(NewMemoryStore())
	ctx := context.Background()
	sess, _ := mgr.Create(ctx, "", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "a"
			if i%2 == 1 {
				id = "b"
			}
			if _, err := mgr.Snap(ctx, sess.ID, box(id, 365), nil, testCanvas, 1); err != nil {
				t.Errorf("Snap() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := mgr.Get(ctx, sess.ID)
	if len(got.State.Memory) != 2 {
		t.Errorf("memory entries = %d, want 2", len(got.State.Memory))
	}
	if n := mgr.locks.size(); n != 0 {
		t.Errorf("locks held after snaps = %d, want 0", n)
	}
}

type recordingHooks struct {
	observability.NoopSnapHooks
	mu                     sync.Mutex
	created, snaps, closed int
}

func (h *recordingHooks) OnSnap(context.Context, string, string, bool, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps++
}

func (h *recordingHooks) OnSessionCreated(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created++
}

func (h *recordingHooks) OnSessionClosed(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed++
}
