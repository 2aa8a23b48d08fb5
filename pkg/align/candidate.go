package align

import (
	"math"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

// Candidate priorities. Lower wins.
const (
	priorityCanvasCenter  = 1
	prioritySiblingCenter = 2
	prioritySiblingEdge   = 3
	priorityCanvasEdge    = 4
	priorityGrid          = 5
)

// candidate is one possible snap on a single axis. position is the element's
// resulting leading coordinate and distance how far it would move.
type candidate struct {
	position float64
	distance float64
	priority int
	guide    Guide
}

// beats reports whether c should replace other as the axis winner.
func (c candidate) beats(other candidate) bool {
	if c.priority != other.priority {
		return c.priority < other.priority
	}
	return c.distance < other.distance
}

// axis projects boxes onto X or Y so candidate generation is written once.
type axis struct {
	name       string
	guide      GuideType
	start      func(geom.ElementBounds) float64
	size       func(geom.ElementBounds) float64
	canvasSize func(geom.CanvasInfo) float64
	center     func(geom.CanvasInfo) float64
}

var xAxis = axis{
	name:       "x",
	guide:      Vertical,
	start:      func(b geom.ElementBounds) float64 { return b.X },
	size:       func(b geom.ElementBounds) float64 { return b.Width },
	canvasSize: func(c geom.CanvasInfo) float64 { return c.Width },
	center:     func(c geom.CanvasInfo) float64 { return c.CenterX },
}

var yAxis = axis{
	name:       "y",
	guide:      Horizontal,
	start:      func(b geom.ElementBounds) float64 { return b.Y },
	size:       func(b geom.ElementBounds) float64 { return b.Height },
	canvasSize: func(c geom.CanvasInfo) float64 { return c.Height },
	center:     func(c geom.CanvasInfo) float64 { return c.CenterY },
}

func (a axis) mid(b geom.ElementBounds) float64 { return a.start(b) + a.size(b)/2 }

func (a axis) end(b geom.ElementBounds) float64 { return a.start(b) + a.size(b) }

// candidates lists every snap target on this axis in priority order. Nothing
// is filtered by tolerance here.
func (a axis) candidates(el geom.ElementBounds, siblings []geom.ElementBounds, canvas geom.CanvasInfo, s Settings) []candidate {
	start, size, mid, end := a.start(el), a.size(el), a.mid(el), a.end(el)
	out := make([]candidate, 0, 3+3*len(siblings))

	add := func(priority int, position, distance float64, g Guide) {
		out = append(out, candidate{position: position, distance: distance, priority: priority, guide: g})
	}

	center := a.center(canvas)
	add(priorityCanvasCenter, center-size/2, math.Abs(mid-center),
		newGuide("canvas-center-"+a.name, a.guide, center, SourceCanvasCenter))

	for _, o := range siblings {
		m := a.mid(o)
		add(prioritySiblingCenter, m-size/2, math.Abs(mid-m),
			newGuide("element-"+o.ID+"-center-"+a.name, a.guide, m, SourceElement))
	}

	for _, o := range siblings {
		lead, trail := a.start(o), a.end(o)
		add(prioritySiblingEdge, lead, math.Abs(start-lead),
			newGuide("element-"+o.ID+"-start-"+a.name, a.guide, lead, SourceElement))
		add(prioritySiblingEdge, trail-size, math.Abs(end-trail),
			newGuide("element-"+o.ID+"-end-"+a.name, a.guide, trail, SourceElement))
	}

	near := SafeMargin
	far := a.canvasSize(canvas) - SafeMargin
	add(priorityCanvasEdge, near, math.Abs(start-near),
		newGuide("canvas-edge-start-"+a.name, a.guide, near, SourceCanvasEdge))
	add(priorityCanvasEdge, far-size, math.Abs(start-(far-size)),
		newGuide("canvas-edge-end-"+a.name, a.guide, far, SourceCanvasEdge))

	if s.ShowGrid && s.GridSize > 0 {
		line := math.Round(start/s.GridSize) * s.GridSize
		add(priorityGrid, line, math.Abs(start-line),
			newGuide(gridGuideID(a.name, line), a.guide, line, SourceGrid))
	}

	return out
}
