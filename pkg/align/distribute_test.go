package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

func TestDistributeElementsFixedSpacing(t *testing.T) {
	elements := []geom.ElementBounds{
		{ID: "c", X: 400, Y: 5, Width: 50, Height: 10},
		{ID: "a", X: 3, Y: 7, Width: 50, Height: 10},
		{ID: "b", X: 120, Y: 9, Width: 50, Height: 10},
	}

	got := DistributeElements(elements, DirectionHorizontal, Spacing(10))
	want := []geom.Position{
		{ID: "a", X: 3, Y: 7},
		{ID: "b", X: 63, Y: 9},
		{ID: "c", X: 123, Y: 5},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DistributeElements() mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributeElementsAuto(t *testing.T) {
	elements := []geom.ElementBounds{
		{ID: "first", X: 0, Y: 0, Width: 50, Height: 10},
		{ID: "mid", X: 37, Y: 0, Width: 50, Height: 10},
		{ID: "last", X: 300, Y: 0, Width: 50, Height: 10},
	}

	got := DistributeElements(elements, DirectionHorizontal, nil)
	want := []geom.Position{
		{ID: "first", X: 0, Y: 0},
		{ID: "mid", X: 150, Y: 0},
		{ID: "last", X: 300, Y: 0},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DistributeElements() mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributeElementsVertical(t *testing.T) {
	elements := []geom.ElementBounds{
		{ID: "a", X: 11, Y: 0, Width: 10, Height: 20},
		{ID: "b", X: 12, Y: 100, Width: 10, Height: 30},
		{ID: "c", X: 13, Y: 50, Width: 10, Height: 40},
	}

	got := DistributeElements(elements, DirectionVertical, Spacing(5))
	want := []geom.Position{
		{ID: "a", X: 11, Y: 0},
		{ID: "c", X: 13, Y: 25},
		{ID: "b", X: 12, Y: 70},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DistributeElements() mismatch (-want +got):\n%s", diff)
	}
}

func TestDistributeElementsTooFew(t *testing.T) {
	tests := []struct {
		name     string
		elements []geom.ElementBounds
	}{
		{"nil", nil},
		{"one", []geom.ElementBounds{{ID: "a", Width: 10, Height: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeElements(tt.elements, DirectionHorizontal, nil)
			if got == nil || len(got) != 0 {
				t.Errorf("DistributeElements() = %v, want empty slice", got)
			}
		})
	}
}

func TestDistributeElementsDoesNotMutateInput(t *testing.T) {
	elements := []geom.ElementBounds{
		{ID: "b", X: 100, Width: 10, Height: 10},
		{ID: "a", X: 0, Width: 10, Height: 10},
	}
	DistributeElements(elements, DirectionHorizontal, Spacing(1))

	if elements[0].ID != "b" || elements[0].X != 100 {
		t.Errorf("input reordered or mutated: %+v", elements)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("vertical"); err != nil || d != DirectionVertical {
		t.Errorf("ParseDirection(vertical) = %q, %v", d, err)
	}
	if _, err := ParseDirection("diagonal"); err == nil {
		t.Error("ParseDirection(diagonal) should fail")
	}
}
