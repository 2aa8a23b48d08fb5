// Package align implements alignment helpers and the snap-to-guide engine
// used while dragging elements on a canvas.
//
// # Overview
//
// The package has two halves:
//
//   - Pure helpers: [AlignToCanvas], [AlignToElement] and [DistributeElements]
//     compute new positions from their inputs alone.
//   - [Engine]: the stateful snapper. [Engine.CalculateSnap] is called on every
//     pointer move and returns a corrected position plus the guide lines to
//     highlight.
//
// # Snapping
//
// Each axis is resolved independently. Candidates are generated in priority
// order:
//
//  1. Canvas center
//  2. Sibling centers
//  3. Sibling edges (leading to leading, trailing to trailing)
//  4. Canvas edges, inset by a 16 unit safe margin
//  5. Grid lines (only when the grid is shown)
//
// Candidates farther than the tolerance are dropped. The lowest priority
// number wins and ties go to the closest candidate, so centering beats edge
// matching and edge matching beats grid snapping.
//
// The tolerance is the configured value divided by zoom and clamped to
// [3, 12]. The candidate that won last time for the same element and axis
// gets 2 extra units, which keeps the guide from flickering while the pointer
// hovers on the boundary.
//
// # State
//
// The hysteresis memory is bounded: the least recently dragged elements are
// evicted once [Settings.MaxTracked] ids are tracked. Hosts can also drop an
// element with [Engine.Forget] or move the whole memory across processes with
// [Engine.State] and [WithState].
//
// An Engine is owned by a single canvas session and is not safe for
// concurrent use.
package align
