package align

import (
	"testing"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

func TestAlignToCanvas(t *testing.T) {
	el := geom.ElementBounds{ID: "a", X: 10, Y: 20, Width: 100, Height: 40}

	tests := []struct {
		alignment Alignment
		want      geom.Point
	}{
		{AlignCenterH, geom.Point{X: 350, Y: 20}},
		{AlignCenterV, geom.Point{X: 10, Y: 280}},
		{AlignLeft, geom.Point{X: 0, Y: 20}},
		{AlignRight, geom.Point{X: 700, Y: 20}},
		{AlignTop, geom.Point{X: 10, Y: 0}},
		{AlignBottom, geom.Point{X: 10, Y: 560}},
		{Alignment("diagonal"), geom.Point{X: 10, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(string(tt.alignment), func(t *testing.T) {
			if got := AlignToCanvas(el, testCanvas, tt.alignment); got != tt.want {
				t.Errorf("AlignToCanvas(%s) = %+v, want %+v", tt.alignment, got, tt.want)
			}
		})
	}
}

func TestAlignToElement(t *testing.T) {
	el := geom.ElementBounds{ID: "a", X: 0, Y: 0, Width: 20, Height: 10}
	target := geom.ElementBounds{ID: "t", X: 100, Y: 200, Width: 60, Height: 30}

	tests := []struct {
		alignment Alignment
		want      geom.Point
	}{
		{AlignLeft, geom.Point{X: 100, Y: 0}},
		{AlignRight, geom.Point{X: 140, Y: 0}},
		{AlignTop, geom.Point{X: 0, Y: 200}},
		{AlignBottom, geom.Point{X: 0, Y: 220}},
		{AlignCenterH, geom.Point{X: 120, Y: 0}},
		{AlignCenterV, geom.Point{X: 0, Y: 210}},
		{Alignment(""), geom.Point{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(string(tt.alignment), func(t *testing.T) {
			if got := AlignToElement(el, target, tt.alignment); got != tt.want {
				t.Errorf("AlignToElement(%s) = %+v, want %+v", tt.alignment, got, tt.want)
			}
		})
	}
}

func TestParseAlignment(t *testing.T) {
	for _, a := range Alignments {
		got, err := ParseAlignment(string(a))
		if err != nil || got != a {
			t.Errorf("ParseAlignment(%q) = %q, %v", a, got, err)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("ParseAlignment(middle) should fail")
	}
}
