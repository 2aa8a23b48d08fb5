// Package pkg provides the libraries behind canvasnap, a smart-guide snapping
// engine for 2D design canvases.
//
// # Overview
//
// While an element is dragged, canvasnap proposes alignment guides (canvas
// center, other elements, canvas edges, grid) and moves the element onto the
// best one. Once snapped, an element holds its guide a little longer than it
// took to acquire it, so it does not flicker at the tolerance boundary.
//
//  1. [geom] - Element bounds, canvas info and positions
//  2. [align] - The snap engine, alignment and distribution
//  3. [scene] - Scenes of elements, file formats and scene storage
//  4. [session] - Stored engines for callers that snap across requests
//  5. [server] - The HTTP API
//  6. [config] - TOML configuration with environment overrides
//  7. [observability] - Hooks for logging and metrics
//  8. [errors] - Coded errors shared by every package
//
// # Data Flow
//
//	drag event (element, siblings, canvas, zoom)
//	         ↓
//	    [session] restores the engine state
//	         ↓
//	    [align] CalculateSnap picks one guide per axis
//	         ↓
//	    SnapResult (position, guides) + updated state
//
// # Quick Start
//
//	eng := align.New(align.WithSettings(align.Settings{
//	    SnapTolerance: 8,
//	    Enabled:       true,
//	}))
//
//	canvas := geom.NewCanvas(800, 600)
//	el := geom.ElementBounds{ID: "cta", X: 303, Y: 500, Width: 200, Height: 50}
//
//	res := eng.CalculateSnap(el, nil, canvas, 1)
//	// res.X == 300, res.Guides[0].ID == "canvas-center-x"
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/geom
// [align]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/align
// [scene]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/scene
// [session]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/canvasnap/pkg/errors
package pkg
