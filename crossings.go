package paths

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"
)

// H64 packs two 32-bit values into one key, a in the upper half and b in the lower half.
func H64(a, b uint32) uint64 {
	return uint64(a)<<32 | uint64(b)
}

// H64A returns the upper half of a key made by H64.
func H64A(h uint64) uint32 {
	return uint32(h >> 32)
}

// H64B returns the lower half of a key made by H64.
func H64B(h uint64) uint32 {
	return uint32(h)
}

// crossingHash identifies the other edge of a crossing by its start point and the IO index of its path.
func crossingHash(start, ioIndex int) uint64 {
	return H64(uint32(start), uint32(ioIndex))
}

// Crossing is an intersection between an edge and an edge of another or the same path.
type Crossing struct {
	Hash     uint64    // start point of the crossing edge and IO index of its path, see H64
	Location r3.Vector // midpoint of the closest approach between both edges
	Alpha    float64   // distance along the edge from its start, relative to the edge's length
	IsPoint  bool      // the crossing lies on an endpoint of the crossing edge
	Dir      r3.Vector // direction of the crossing edge
}

// EdgeStart returns the start point index of the crossing edge.
func (c Crossing) EdgeStart() int {
	return int(H64A(c.Hash))
}

// PathIOIndex returns the IO index of the path of the crossing edge.
func (c Crossing) PathIOIndex() int {
	return int(int32(H64B(c.Hash)))
}

func (c Crossing) String() string {
	return fmt.Sprintf("Crossing(edge=%d io=%d alpha=%g at %s)", c.EdgeStart(), c.PathIOIndex(), c.Alpha, vectorString(c.Location))
}

// PathEdgeCrossings collects the crossings found on a single edge.
type PathEdgeCrossings struct {
	Index     int // index of the edge
	Crossings []Crossing
}

// NewPathEdgeCrossings returns an empty collection for edge index.
func NewPathEdgeCrossings(index int) *PathEdgeCrossings {
	return &PathEdgeCrossings{Index: index}
}

// IsEmpty returns true if no crossings were found.
func (c *PathEdgeCrossings) IsEmpty() bool {
	return len(c.Crossings) == 0
}

// FindSplit tests edge of path against otherEdge of other, and records a crossing when both pass within the tolerance of details. The crossing's alpha is measured with the edge lengths in lengths, which must have been computed for path. It returns true if a crossing was added.
//
// The candidate is rejected when otherEdge is degenerate, when both edges share an endpoint position, when the angle between both edges falls outside the window of details, or when the closest point on edge is one of its own endpoints.
func (c *PathEdgeCrossings) FindSplit(path *Path, edge PathEdge, lengths *LengthExtra, other *Path, otherEdge PathEdge, details *EdgeIntersectionDetails) bool {
	if !other.IsEdgeValid(otherEdge) {
		return false
	}

	a1, b1 := path.Pos(edge.Start), path.Pos(edge.End)
	a2, b2 := other.Pos(otherEdge.Start), other.Pos(otherEdge.End)
	if a1 == a2 || a1 == b2 || a2 == b1 || b2 == b1 {
		return false
	}

	if details.WantsDotCheck && !details.CheckDot(math.Abs(safeNormal(b1.Sub(a1)).Dot(otherEdge.Dir))) {
		return false
	}

	a, b := SegmentClosestPoints(a1, b1, a2, b2)
	if a == a1 || a == b1 {
		return false
	}
	isPoint := b == a2 || b == b2
	if details.ToleranceSquared <= distSq(a, b) {
		return false
	}

	alpha := 0.0
	if l := lengths.Get(edge.Start); 0.0 < l {
		alpha = a1.Distance(a) / l
	}
	c.Crossings = append(c.Crossings, Crossing{
		Hash:     crossingHash(otherEdge.Start, other.IOIndex),
		Location: lerpVector(a, b, 0.5),
		Alpha:    alpha,
		IsPoint:  isPoint,
		Dir:      otherEdge.Dir,
	})
	return true
}

// SortByAlpha orders the crossings from the start of the edge to its end.
func (c *PathEdgeCrossings) SortByAlpha() {
	slices.SortStableFunc(c.Crossings, func(a, b Crossing) int {
		return cmp.Compare(a.Alpha, b.Alpha)
	})
}

// SortByHash orders the crossings by the start point of the crossing edge, then by the IO index of its path.
func (c *PathEdgeCrossings) SortByHash() {
	slices.SortStableFunc(c.Crossings, func(a, b Crossing) int {
		return cmp.Compare(a.Hash, b.Hash)
	})
}

// RemoveCrossing removes the first crossing with the edge starting at start on the path with IO index ioIndex, and returns true if one was found.
func (c *PathEdgeCrossings) RemoveCrossing(start, ioIndex int) bool {
	h := crossingHash(start, ioIndex)
	for i, crossing := range c.Crossings {
		if crossing.Hash == h {
			c.Crossings = slices.Delete(c.Crossings, i, i+1)
			return true
		}
	}
	return false
}
