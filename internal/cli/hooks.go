package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasnap/pkg/observability"
)

// logHooks reports observability events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnSnap(_ context.Context, sessionID, elementID string, snapped bool, guides int, d time.Duration) {
	h.logger.Debug("snap", "session", sessionID, "element", elementID, "snapped", snapped, "guides", guides, "duration", d)
}

func (h logHooks) OnSessionCreated(_ context.Context, id string) {
	h.logger.Debug("session created", "session", id)
}

func (h logHooks) OnSessionClosed(_ context.Context, id string) {
	h.logger.Debug("session closed", "session", id)
}

func (h logHooks) OnStoreOp(_ context.Context, backend, kind, op string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("store", "backend", backend, "kind", kind, "op", op, "duration", d, "err", err)
		return
	}
	h.logger.Debug("store", "backend", backend, "kind", kind, "op", op, "duration", d)
}

var registerOnce sync.Once

// registerLogHooks installs logHooks once per process. HTTP requests are
// already logged by the server middleware.
func registerLogHooks(l *log.Logger) {
	registerOnce.Do(func() {
		h := logHooks{logger: l}
		observability.SetSnapHooks(h)
		observability.SetStoreHooks(h)
	})
}
