// Package scene defines the canvas document the editor persists: the canvas
// size plus the bounding boxes of every element on it.
//
// Scenes are plain values. They are read from and written to JSON or YAML
// files (see [ReadFile] and [WriteFile]) and stored by a [Store] with last
// write wins semantics.
package scene

import (
	"time"

	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
)

// Scene is one canvas layout.
type Scene struct {
	ID        string               `json:"id" yaml:"id" bson:"_id"`
	Name      string               `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Canvas    geom.CanvasInfo      `json:"canvas" yaml:"canvas" bson:"canvas"`
	Elements  []geom.ElementBounds `json:"elements" yaml:"elements" bson:"elements"`
	UpdatedAt time.Time            `json:"updated_at,omitempty" yaml:"updated_at,omitempty" bson:"updated_at"`
}

// Element returns the element with the given id.
func (s *Scene) Element(id string) (geom.ElementBounds, bool) {
	for _, el := range s.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return geom.ElementBounds{}, false
}

// Siblings returns every element except the one with the given id.
func (s *Scene) Siblings(id string) []geom.ElementBounds {
	out := make([]geom.ElementBounds, 0, len(s.Elements))
	for _, el := range s.Elements {
		if el.ID != id {
			out = append(out, el)
		}
	}
	return out
}

// Move sets the position of one element.
func (s *Scene) Move(id string, x, y float64) error {
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			s.Elements[i].X, s.Elements[i].Y = x, y
			return nil
		}
	}
	return errors.New(errors.ErrCodeElementNotFound, "element %q not in scene", id)
}

// ApplyPositions moves every listed element. Unknown ids are an error and
// leave the scene unchanged.
func (s *Scene) ApplyPositions(positions []geom.Position) error {
	index := make(map[string]int, len(s.Elements))
	for i, el := range s.Elements {
		index[el.ID] = i
	}
	for _, p := range positions {
		if _, ok := index[p.ID]; !ok {
			return errors.New(errors.ErrCodeElementNotFound, "element %q not in scene", p.ID)
		}
	}
	for _, p := range positions {
		i := index[p.ID]
		s.Elements[i].X, s.Elements[i].Y = p.X, p.Y
	}
	return nil
}

// Normalize fills in a missing canvas center.
func (s *Scene) Normalize() {
	s.Canvas = s.Canvas.WithCenter()
}

// Validate checks the structural rules a scene must satisfy before it is
// stored or snapped against.
func (s *Scene) Validate() error {
	if !s.Canvas.Valid() || s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "canvas must have a positive finite size")
	}
	seen := make(map[string]bool, len(s.Elements))
	for _, el := range s.Elements {
		if el.ID == "" {
			return errors.New(errors.ErrCodeInvalidScene, "element without id")
		}
		if seen[el.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate element id %q", el.ID)
		}
		seen[el.ID] = true
		if !el.Valid() {
			return errors.New(errors.ErrCodeInvalidScene, "element %q has invalid bounds", el.ID)
		}
	}
	return nil
}
