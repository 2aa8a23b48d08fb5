// Package geom defines the value types shared by the alignment engine, scene
// documents and transports.
//
// All coordinates are canvas-logical units: independent of on-screen zoom and
// device pixel ratio. X grows to the right and Y grows downward, with the
// element origin at its top-left corner.
package geom

import "math"

// ElementBounds is the axis-aligned bounding box of a draggable element.
type ElementBounds struct {
	ID     string  `json:"id" yaml:"id" bson:"id"`
	X      float64 `json:"x" yaml:"x" bson:"x"`
	Y      float64 `json:"y" yaml:"y" bson:"y"`
	Width  float64 `json:"width" yaml:"width" bson:"width"`
	Height float64 `json:"height" yaml:"height" bson:"height"`
}

// Left returns the leading X edge.
func (b ElementBounds) Left() float64 { return b.X }

// Right returns the trailing X edge.
func (b ElementBounds) Right() float64 { return b.X + b.Width }

// Top returns the leading Y edge.
func (b ElementBounds) Top() float64 { return b.Y }

// Bottom returns the trailing Y edge.
func (b ElementBounds) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center of the box.
func (b ElementBounds) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b ElementBounds) CenterY() float64 { return b.Y + b.Height/2 }

// At returns a copy of b moved to (x, y).
func (b ElementBounds) At(x, y float64) ElementBounds {
	b.X, b.Y = x, y
	return b
}

// Valid reports whether every field is finite and the size is non-negative.
func (b ElementBounds) Valid() bool {
	return finite(b.X, b.Y, b.Width, b.Height) && b.Width >= 0 && b.Height >= 0
}

// CanvasInfo describes the design surface.
type CanvasInfo struct {
	Width   float64 `json:"width" yaml:"width" bson:"width"`
	Height  float64 `json:"height" yaml:"height" bson:"height"`
	CenterX float64 `json:"centerX" yaml:"centerX" bson:"center_x"`
	CenterY float64 `json:"centerY" yaml:"centerY" bson:"center_y"`
}

// NewCanvas returns a canvas of the given size with its center filled in.
func NewCanvas(width, height float64) CanvasInfo {
	return CanvasInfo{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// WithCenter returns c with a zero center replaced by the geometric center.
// Documents written by hand often omit the center fields.
func (c CanvasInfo) WithCenter() CanvasInfo {
	if c.CenterX == 0 && c.CenterY == 0 {
		c.CenterX, c.CenterY = c.Width/2, c.Height/2
	}
	return c
}

// Valid reports whether every field is finite and the size is non-negative.
func (c CanvasInfo) Valid() bool {
	return finite(c.Width, c.Height, c.CenterX, c.CenterY) && c.Width >= 0 && c.Height >= 0
}

// Point is a top-left position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Position is a new top-left position for the element with the given id.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
