package scene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/canvasnap/pkg/errors"
	"github.com/matzehuels/canvasnap/pkg/geom"
)

func testScene() *Scene {
	return &Scene{
		ID:     "wheel",
		Name:   "Wheel of fortune",
		Canvas: geom.NewCanvas(800, 600),
		Elements: []geom.ElementBounds{
			{ID: "title", X: 100, Y: 40, Width: 600, Height: 60},
			{ID: "wheel", X: 250, Y: 150, Width: 300, Height: 300},
			{ID: "cta", X: 300, Y: 500, Width: 200, Height: 50},
		},
	}
}

func TestSceneElement(t *testing.T) {
	s := testScene()

	el, ok := s.Element("cta")
	if !ok || el.Width != 200 {
		t.Errorf("Element(cta) = %+v, %v", el, ok)
	}
	if _, ok := s.Element("missing"); ok {
		t.Error("Element(missing) should not be found")
	}
}

func TestSceneSiblings(t *testing.T) {
	s := testScene()
	got := s.Siblings("wheel")

	if len(got) != 2 {
		t.Fatalf("len(Siblings) = %d, want 2", len(got))
	}
	for _, el := range got {
		if el.ID == "wheel" {
			t.Error("Siblings should exclude the element itself")
		}
	}
}

func TestSceneMove(t *testing.T) {
	s := testScene()

	if err := s.Move("cta", 1, 2); err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	el, _ := s.Element("cta")
	if el.X != 1 || el.Y != 2 {
		t.Errorf("after Move = (%v, %v), want (1, 2)", el.X, el.Y)
	}

	err := s.Move("ghost", 0, 0)
	if !errors.Is(err, errors.ErrCodeElementNotFound) {
		t.Errorf("Move(ghost) error = %v, want ELEMENT_NOT_FOUND", err)
	}
}

func TestSceneApplyPositions(t *testing.T) {
	s := testScene()

	err := s.ApplyPositions([]geom.Position{{ID: "title", X: 5, Y: 6}, {ID: "cta", X: 7, Y: 8}})
	if err != nil {
		t.Fatalf("ApplyPositions() error: %v", err)
	}
	title, _ := s.Element("title")
	cta, _ := s.Element("cta")
	if title.X != 5 || cta.Y != 8 {
		t.Errorf("positions not applied: title=%+v cta=%+v", title, cta)
	}
}

func TestSceneApplyPositionsAtomic(t *testing.T) {
	s := testScene()
	before := testScene()

	err := s.ApplyPositions([]geom.Position{{ID: "title", X: 5, Y: 6}, {ID: "ghost", X: 7, Y: 8}})
	if !errors.Is(err, errors.ErrCodeElementNotFound) {
		t.Fatalf("ApplyPositions() error = %v, want ELEMENT_NOT_FOUND", err)
	}
	if diff := cmp.Diff(before.Elements, s.Elements); diff != "" {
		t.Errorf("failed ApplyPositions changed the scene (-before +after):\n%s", diff)
	}
}

func TestSceneValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scene)
		wantErr bool
	}{
		{"valid", func(*Scene) {}, false},
		{"zero canvas", func(s *Scene) { s.Canvas = geom.CanvasInfo{} }, true},
		{"nan canvas", func(s *Scene) { s.Canvas.Width = math.NaN() }, true},
		{"empty id", func(s *Scene) { s.Elements[0].ID = "" }, true},
		{"duplicate id", func(s *Scene) { s.Elements[1].ID = "title" }, true},
		{"negative size", func(s *Scene) { s.Elements[2].Height = -1 }, true},
		{"no elements", func(s *Scene) { s.Elements = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScene()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("Validate() code = %v, want INVALID_SCENE", errors.GetCode(err))
			}
		})
	}
}
