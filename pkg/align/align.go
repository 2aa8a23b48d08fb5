package align

import (
	"fmt"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

// Alignment names one of the six fixed alignments.
type Alignment string

// Alignments. CenterH centers horizontally (moves X) and CenterV centers
// vertically (moves Y).
const (
	AlignLeft    Alignment = "left"
	AlignRight   Alignment = "right"
	AlignTop     Alignment = "top"
	AlignBottom  Alignment = "bottom"
	AlignCenterH Alignment = "center-h"
	AlignCenterV Alignment = "center-v"
)

// Alignments lists every supported alignment.
var Alignments = []Alignment{AlignLeft, AlignRight, AlignTop, AlignBottom, AlignCenterH, AlignCenterV}

// ParseAlignment validates an alignment name.
func ParseAlignment(s string) (Alignment, error) {
	for _, a := range Alignments {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// AlignToCanvas returns the position of element aligned to the canvas.
// An unknown alignment returns the element's current position.
func AlignToCanvas(element geom.ElementBounds, canvas geom.CanvasInfo, alignment Alignment) geom.Point {
	p := geom.Point{X: element.X, Y: element.Y}
	switch alignment {
	case AlignCenterH:
		p.X = canvas.CenterX - element.Width/2
	case AlignCenterV:
		p.Y = canvas.CenterY - element.Height/2
	case AlignLeft:
		p.X = 0
	case AlignRight:
		p.X = canvas.Width - element.Width
	case AlignTop:
		p.Y = 0
	case AlignBottom:
		p.Y = canvas.Height - element.Height
	}
	return p
}

// AlignToElement returns the position of element aligned to target.
// An unknown alignment returns the element's current position.
func AlignToElement(element, target geom.ElementBounds, alignment Alignment) geom.Point {
	p := geom.Point{X: element.X, Y: element.Y}
	switch alignment {
	case AlignLeft:
		p.X = target.Left()
	case AlignRight:
		p.X = target.Right() - element.Width
	case AlignTop:
		p.Y = target.Top()
	case AlignBottom:
		p.Y = target.Bottom() - element.Height
	case AlignCenterH:
		p.X = target.CenterX() - element.Width/2
	case AlignCenterV:
		p.Y = target.CenterY() - element.Height/2
	}
	return p
}
