package align

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/canvasnap/pkg/geom"
)

// Direction is the axis elements are distributed along.
type Direction string

// Distribution directions.
const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionHorizontal, DirectionVertical:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Spacing returns a pointer to v for use with DistributeElements.
func Spacing(v float64) *float64 { return &v }

// DistributeElements returns new positions for elements sorted along
// direction. Any direction other than vertical distributes horizontally.
//
// With spacing, the first element stays put and each following element starts
// spacing units after the previous one ends. Without spacing, the first and
// last elements stay put and the ones in between are placed at equal steps
// between them.
//
// Fewer than two elements yields an empty slice. The cross-axis coordinate is
// never changed.
func DistributeElements(elements []geom.ElementBounds, direction Direction, spacing *float64) []geom.Position {
	if len(elements) < 2 {
		return []geom.Position{}
	}

	a := xAxis
	if direction == DirectionVertical {
		a = yAxis
	}

	sorted := slices.Clone(elements)
	slices.SortStableFunc(sorted, func(p, q geom.ElementBounds) int {
		return cmp.Compare(a.start(p), a.start(q))
	})

	starts := make([]float64, len(sorted))
	if spacing != nil {
		starts[0] = a.start(sorted[0])
		for i := 1; i < len(sorted); i++ {
			starts[i] = starts[i-1] + a.size(sorted[i-1]) + *spacing
		}
	} else {
		first, last := a.start(sorted[0]), a.start(sorted[len(sorted)-1])
		step := (last - first) / float64(len(sorted)-1)
		for i := range sorted {
			starts[i] = first + float64(i)*step
		}
		starts[len(starts)-1] = last
	}

	out := make([]geom.Position, len(sorted))
	for i, el := range sorted {
		p := geom.Position{ID: el.ID, X: el.X, Y: el.Y}
		if a.name == xAxis.name {
			p.X = starts[i]
		} else {
			p.Y = starts[i]
		}
		out[i] = p
	}
	return out
}
