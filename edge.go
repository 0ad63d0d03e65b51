package paths

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// PathEdge is the directed segment between two point indices of a path. Dir is the unit direction from Start to End and is zero for a degenerate edge. Bounds enclose both endpoints grown by the path's expansion.
type PathEdge struct {
	Start, End int
	AltStart   int
	Dir        r3.Vector
	Bounds     Box
}

// NewPathEdge returns the edge from point start to point end.
func NewPathEdge(start, end int, points Points, expansion float64) PathEdge {
	a, b := points.At(start).Location, points.At(end).Location
	return PathEdge{
		Start:    start,
		End:      end,
		AltStart: start,
		Dir:      safeNormal(b.Sub(a)),
		Bounds:   BoxFromPoints(a, b).Expand(expansion),
	}
}

// ShareIndices returns true if both edges have a point index in common.
func (e PathEdge) ShareIndices(o PathEdge) bool {
	return e.Start == o.Start || e.Start == o.End || e.End == o.Start || e.End == o.End
}

// Connects returns true if one edge ends where the other starts.
func (e PathEdge) Connects(o PathEdge) bool {
	return e.Start == o.End || e.End == o.Start
}

// Length returns the distance between the edge's endpoints.
func (e PathEdge) Length(points Points) float64 {
	return points.At(e.Start).Location.Distance(points.At(e.End).Location)
}

func (e PathEdge) String() string {
	return fmt.Sprintf("PathEdge(%d-%d)", e.Start, e.End)
}
