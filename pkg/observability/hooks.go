// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. The snap engine stays a
// pure computation; the layers around it (sessions, stores, the HTTP API)
// report events through the hooks registered here.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSnapHooks(&mySnapHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Snap().OnSnap(ctx, sessionID, elementID, res.Snapped, len(res.Guides), elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Snap Hooks
// =============================================================================

// SnapHooks receives events from drag sessions.
type SnapHooks interface {
	// OnSnap records one CalculateSnap call inside a session.
	OnSnap(ctx context.Context, sessionID, elementID string, snapped bool, guides int, duration time.Duration)

	// OnSessionCreated records a new drag session.
	OnSessionCreated(ctx context.Context, sessionID string)

	// OnSessionClosed records an explicitly closed session.
	OnSessionClosed(ctx context.Context, sessionID string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from scene and session storage backends.
type StoreHooks interface {
	// OnStoreOp records one backend operation. backend is "memory", "file",
	// "redis" or "mongo"; kind is "scene" or "session"; op is "get", "put"
	// or "delete".
	OnStoreOp(ctx context.Context, backend, kind, op string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the chi route pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSnapHooks is a no-op implementation of SnapHooks.
type NoopSnapHooks struct{}

func (NoopSnapHooks) OnSnap(context.Context, string, string, bool, int, time.Duration) {}
func (NoopSnapHooks) OnSessionCreated(context.Context, string)                         {}
func (NoopSnapHooks) OnSessionClosed(context.Context, string)                          {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreOp(context.Context, string, string, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	snapHooks  SnapHooks  = NoopSnapHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetSnapHooks registers custom snap hooks.
// This should be called once at application startup.
func SetSnapHooks(h SnapHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Snap returns the registered snap hooks.
func Snap() SnapHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	snapHooks = NoopSnapHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
