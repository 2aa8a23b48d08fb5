package align

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultSnapTolerance is the snap distance in screen units at zoom 1.
	DefaultSnapTolerance = 8.0

	// DefaultGridSize is the grid spacing in logical units.
	DefaultGridSize = 20.0

	// DefaultMaxTracked bounds the hysteresis memory.
	DefaultMaxTracked = 1024

	// MinTolerance and MaxTolerance clamp the zoom-adjusted tolerance.
	MinTolerance = 3.0
	MaxTolerance = 12.0

	// HysteresisBonus is added to the tolerance of last call's winner.
	HysteresisBonus = 2.0

	// SafeMargin insets the canvas edge candidates.
	SafeMargin = 16.0
)

// positionEpsilon absorbs float noise when matching a candidate against the
// remembered snap coordinate.
const positionEpsilon = 1e-6

// =============================================================================
// Settings
// =============================================================================

// Settings configures an Engine. Values are not validated: zero or negative
// values are accepted and simply degrade snapping.
type Settings struct {
	SnapTolerance float64 `json:"snap_tolerance" toml:"tolerance"`
	GridSize      float64 `json:"grid_size" toml:"grid_size"`
	ShowGrid      bool    `json:"show_grid" toml:"show_grid"`
	Enabled       bool    `json:"enabled" toml:"enabled"`
	MaxTracked    int     `json:"max_tracked" toml:"max_tracked"`
}

// DefaultSettings returns the settings a new Engine starts with.
func DefaultSettings() Settings {
	return Settings{
		SnapTolerance: DefaultSnapTolerance,
		GridSize:      DefaultGridSize,
		ShowGrid:      false,
		Enabled:       true,
		MaxTracked:    DefaultMaxTracked,
	}
}

// =============================================================================
// Engine
// =============================================================================

// SnapResult is the outcome of a CalculateSnap call. Guides holds at most one
// vertical and one horizontal guide.
type SnapResult struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Snapped bool    `json:"snapped"`
	Guides  []Guide `json:"guides"`
}

// State is the portable part of an Engine: its settings and hysteresis memory.
type State struct {
	Settings Settings      `json:"settings"`
	Memory   []MemoryEntry `json:"memory,omitempty"`
}

// Engine snaps dragged elements to alignment guides.
type Engine struct {
	settings   Settings
	killSwitch func() bool
	memory     *memory
	logger     *log.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithKillSwitch installs a check consulted at the top of every snap. When it
// reports true the engine behaves as if disabled.
func WithKillSwitch(fn func() bool) Option {
	return func(e *Engine) { e.killSwitch = fn }
}

// WithState restores settings and hysteresis memory exported by State.
func WithState(st State) Option {
	return func(e *Engine) {
		e.settings = st.Settings
		e.memory = newMemory(st.Settings.MaxTracked)
		for _, entry := range st.Memory {
			e.memory.put(entry.ID, entry.AxisMemory)
		}
	}
}

// WithLogger sets the logger used for debug tracing of snap decisions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine with default settings and empty memory.
func New(opts ...Option) *Engine {
	e := &Engine{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(e)
	}
	if e.memory == nil {
		e.memory = newMemory(e.settings.MaxTracked)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings { return e.settings }

// SetSnapTolerance sets the base tolerance for subsequent calls.
func (e *Engine) SetSnapTolerance(v float64) { e.settings.SnapTolerance = v }

// SetGridSize sets the grid spacing for subsequent calls.
func (e *Engine) SetGridSize(v float64) { e.settings.GridSize = v }

// SetShowGrid toggles grid snapping.
func (e *Engine) SetShowGrid(v bool) { e.settings.ShowGrid = v }

// SetEnabled toggles snapping entirely.
func (e *Engine) SetEnabled(v bool) { e.settings.Enabled = v }

// SetMaxTracked changes the hysteresis memory bound, evicting if needed.
func (e *Engine) SetMaxTracked(n int) {
	e.settings.MaxTracked = n
	e.memory.setCapacity(n)
}

// Apply replaces all settings at once.
func (e *Engine) Apply(s Settings) {
	e.settings = s
	e.memory.setCapacity(s.MaxTracked)
}

// Forget drops the hysteresis memory of one element, typically after it was
// deleted from the canvas.
func (e *Engine) Forget(id string) { e.memory.remove(id) }

// Reset drops all hysteresis memory.
func (e *Engine) Reset() { e.memory = newMemory(e.settings.MaxTracked) }

// Tracked returns the number of elements with hysteresis memory.
func (e *Engine) Tracked() int { return e.memory.len() }

// State exports settings and memory for later use with WithState.
func (e *Engine) State() State {
	return State{Settings: e.settings, Memory: e.memory.entries()}
}

// Tolerance returns the effective snap distance in logical units at zoom.
func (e *Engine) Tolerance(zoom float64) float64 {
	return clamp(e.settings.SnapTolerance/zoom, MinTolerance, MaxTolerance)
}

// CalculateSnap returns the snapped position of element among others.
//
// Zoom is the current view scale (1 for 100%). Invalid input (zoom not
// positive, non-finite numbers, negative sizes) leaves the position untouched
// and does not affect the hysteresis memory.
func (e *Engine) CalculateSnap(element geom.ElementBounds, others []geom.ElementBounds, canvas geom.CanvasInfo, zoom float64) SnapResult {
	result := SnapResult{X: element.X, Y: element.Y, Guides: []Guide{}}

	if !e.settings.Enabled || (e.killSwitch != nil && e.killSwitch()) {
		return result
	}
	if !usable(element, canvas, zoom) {
		e.logger.Debug("snap skipped: degenerate input", "element", element.ID, "zoom", zoom)
		return result
	}

	tol := e.Tolerance(zoom)
	last, _ := e.memory.get(element.ID)
	siblings := siblingsOf(element, others)

	var next AxisMemory
	if c, ok := e.pick(xAxis, element, siblings, canvas, tol, last.X); ok {
		result.X = c.position
		result.Guides = append(result.Guides, c.guide)
		next.X = ptr(c.position)
	}
	if c, ok := e.pick(yAxis, element, siblings, canvas, tol, last.Y); ok {
		result.Y = c.position
		result.Guides = append(result.Guides, c.guide)
		next.Y = ptr(c.position)
	}
	e.memory.put(element.ID, next)

	result.Snapped = result.X != element.X || result.Y != element.Y
	if result.Snapped {
		e.logger.Debug("snapped", "element", element.ID, "x", result.X, "y", result.Y, "guides", len(result.Guides))
	}
	return result
}

// pick returns the winning candidate on one axis.
func (e *Engine) pick(a axis, el geom.ElementBounds, siblings []geom.ElementBounds, canvas geom.CanvasInfo, tol float64, last *float64) (candidate, bool) {
	var (
		best  candidate
		found bool
	)
	for _, c := range a.candidates(el, siblings, canvas, e.settings) {
		limit := tol
		if last != nil && math.Abs(c.position-*last) <= positionEpsilon {
			limit += HysteresisBonus
		}
		if c.distance > limit {
			continue
		}
		if !found || c.beats(best) {
			best, found = c, true
		}
	}
	return best, found
}

// usable reports whether the inputs are safe to snap with.
func usable(el geom.ElementBounds, canvas geom.CanvasInfo, zoom float64) bool {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0 {
		return false
	}
	return el.Valid() && canvas.Valid()
}

// siblingsOf filters out the dragged element itself and unusable boxes.
func siblingsOf(el geom.ElementBounds, others []geom.ElementBounds) []geom.ElementBounds {
	out := make([]geom.ElementBounds, 0, len(others))
	for _, o := range others {
		if o.ID == el.ID || !o.Valid() {
			continue
		}
		out = append(out, o)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func ptr(v float64) *float64 { return &v }
