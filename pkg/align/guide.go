package align

import "strconv"

// GuideType is the orientation of a guide line.
type GuideType string

// Guide orientations. A vertical guide marks an X position.
const (
	Vertical   GuideType = "vertical"
	Horizontal GuideType = "horizontal"
)

// Source identifies what a guide line aligns to.
type Source string

// Guide sources.
const (
	SourceCanvasCenter Source = "canvas-center"
	SourceCanvasEdge   Source = "canvas-edge"
	SourceElement      Source = "element"
	SourceGrid         Source = "grid"
)

// Guide is a renderable hint line.
type Guide struct {
	ID       string    `json:"id"`
	Type     GuideType `json:"type"`
	Position float64   `json:"position"`
	Color    string    `json:"color"`
	Opacity  float64   `json:"opacity"`
	Source   Source    `json:"source"`
}

// guideStyle is the color and opacity drawn for a source.
type guideStyle struct {
	color   string
	opacity float64
}

var guideStyles = map[Source]guideStyle{
	SourceCanvasCenter: {color: "#ff3b9a", opacity: 0.9},
	SourceElement:      {color: "#3b82f6", opacity: 0.8},
	SourceCanvasEdge:   {color: "#22c55e", opacity: 0.6},
	SourceGrid:         {color: "#94a3b8", opacity: 0.4},
}

func newGuide(id string, typ GuideType, pos float64, src Source) Guide {
	style := guideStyles[src]
	return Guide{
		ID:       id,
		Type:     typ,
		Position: pos,
		Color:    style.color,
		Opacity:  style.opacity,
		Source:   src,
	}
}

func gridGuideID(axis string, pos float64) string {
	return "grid-" + axis + "-" + strconv.FormatFloat(pos, 'f', -1, 64)
}
