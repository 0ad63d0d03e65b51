package paths

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// octreeMargin is added to the root half size of an edge octree so that edges on the border of the path's bounds fit inside.
const octreeMargin = 10.0

type convexity int

const (
	convex convexity = iota
	nonConvex
)

// Path is an open polyline or closed loop over a borrowed list of poses. Edges are built once on construction, edge i going from point i to point (i+1)%NumPoints, and never change afterwards. The edge octree, edge extras and projection are optional additions built on demand.
//
// A Path is not safe for concurrent mutation. BuildEdgeOctree, BuildProjection and the extra sweeps must be done before the path is shared between goroutines, after which the query methods are safe to call concurrently.
type Path struct {
	Positions  Points
	ClosedLoop bool
	Expansion  float64
	Up         r3.Vector

	Idx     int // identity of the path, used by PathInclusionHelper
	IOIndex int // index of the collection the path came from, used in crossing hashes

	NumPoints, NumEdges int
	LastIndex, LastEdge int
	Edges               []PathEdge
	Bounds              Box
	TotalLength         float64

	octree        *EdgeOctree
	extras        []EdgeExtra
	convexity     convexity
	convexitySign int
	projection    *Projection
}

// NewPath builds the edges of the path through points. Each edge's bounds are grown by expansion, so that bounding box tests find segments that pass within that distance. A path with fewer than two points has no edges and empty bounds.
func NewPath(points Points, closed bool, expansion float64) *Path {
	p := &Path{
		Positions:  points,
		ClosedLoop: closed,
		Expansion:  expansion,
		Up:         UpVector,
		NumPoints:  points.Len(),
		Bounds:     EmptyBox(),
	}
	p.LastIndex = p.NumPoints - 1
	if 2 <= p.NumPoints {
		if closed {
			p.NumEdges = p.NumPoints
		} else {
			p.NumEdges = p.NumPoints - 1
		}
	}
	p.LastEdge = p.NumEdges - 1

	p.Edges = make([]PathEdge, 0, p.NumEdges)
	for i := 0; i < p.NumEdges; i++ {
		e := NewPathEdge(i, (i+1)%p.NumPoints, points, expansion)
		p.Edges = append(p.Edges, e)
		p.Bounds = p.Bounds.Union(e.Bounds)
		p.TotalLength += e.Length(points)
	}
	return p
}

// NewPathFromLocations builds a path through plain positions.
func NewPathFromLocations(locs []r3.Vector, closed bool, expansion float64) *Path {
	return NewPath(Locations(locs), closed, expansion)
}

// IsValid returns true if the path has at least one edge.
func (p *Path) IsValid() bool {
	return 0 < p.NumEdges
}

// IsClosedLoop returns true if the last point connects back to the first.
func (p *Path) IsClosedLoop() bool {
	return p.ClosedLoop
}

// Pos returns the location of point i.
func (p *Path) Pos(i int) r3.Vector {
	return p.Positions.At(i).Location
}

// LoopPointIndex wraps i around the points, regardless of whether the path is closed.
func (p *Path) LoopPointIndex(i int) int {
	return tile(i, p.NumPoints)
}

// SafePointIndex wraps i around the points of a closed loop, and clamps it to the first or last point of an open path.
func (p *Path) SafePointIndex(i int) int {
	if p.ClosedLoop {
		return tile(i, p.NumPoints)
	}
	return clampIndex(i, 0, p.LastIndex)
}

// SafeEdgeIndex wraps i around the edges of a closed loop, and clamps it to the first or last edge of an open path.
func (p *Path) SafeEdgeIndex(i int) int {
	if p.ClosedLoop {
		return tile(i, p.NumEdges)
	}
	return clampIndex(i, 0, p.LastEdge)
}

// NextPointIndex returns the index of the point after i.
func (p *Path) NextPointIndex(i int) int {
	return p.SafePointIndex(i + 1)
}

// PrevPointIndex returns the index of the point before i.
func (p *Path) PrevPointIndex(i int) int {
	return p.SafePointIndex(i - 1)
}

// DirToNextPoint returns the unit direction from point i to the next point. The last point of an open path has no next point and uses the direction of the last edge.
func (p *Path) DirToNextPoint(i int) r3.Vector {
	if p.NumEdges == 0 {
		return r3.Vector{}
	} else if !p.ClosedLoop && i == p.LastIndex {
		return p.Edges[i-1].Dir
	}
	return p.Edges[p.SafeEdgeIndex(i)].Dir
}

// DirToPrevPoint returns the unit direction from point i to the previous point. The first point of an open path has no previous point and uses the reversed direction of the first edge.
func (p *Path) DirToPrevPoint(i int) r3.Vector {
	return p.DirToNextPoint(p.SafePointIndex(i - 1)).Mul(-1.0)
}

// DirToNeighbor returns DirToPrevPoint for a negative offset and DirToNextPoint otherwise. Only the sign of offset is used.
func (p *Path) DirToNeighbor(i, offset int) r3.Vector {
	if offset < 0 {
		return p.DirToPrevPoint(i)
	}
	return p.DirToNextPoint(i)
}

// EdgePositionAtAlpha returns the position at alpha along edge i, with alpha in [0,1].
func (p *Path) EdgePositionAtAlpha(i int, alpha float64) r3.Vector {
	e := p.Edges[i]
	return lerpVector(p.Pos(e.Start), p.Pos(e.End), alpha)
}

// IsEdgeValid returns true if the endpoints of edge e do not coincide.
func (p *Path) IsEdgeValid(e PathEdge) bool {
	return 0.0 < distSq(p.Pos(e.Start), p.Pos(e.End))
}

// EdgeLength returns the length of edge i.
func (p *Path) EdgeLength(i int) float64 {
	return p.Edges[i].Length(p.Positions)
}

// EdgeSegment returns edge i as a segment with the path's expansion.
func (p *Path) EdgeSegment(i int) Segment {
	e := p.Edges[i]
	return NewSegment(p.Pos(e.Start), p.Pos(e.End), p.Expansion)
}

func (p *Path) String() string {
	closed := "open"
	if p.ClosedLoop {
		closed = "closed"
	}
	return fmt.Sprintf("Path(idx=%d %s points=%d edges=%d length=%g)", p.Idx, closed, p.NumPoints, p.NumEdges, p.TotalLength)
}

////////////////////////////////////////////////////////////////

// UpdateConvexity folds the turn at point i into the path's convexity. Once the path is found non-convex it stays so and further calls do nothing.
func (p *Path) UpdateConvexity(i int) {
	if p.convexity == nonConvex {
		return
	}
	a, c := p.SafePointIndex(i-1), p.SafePointIndex(i+1)
	if a == c {
		p.convexity = nonConvex
		return
	}
	p.checkConvex(p.Pos(a), p.Pos(i), p.Pos(c))
}

func (p *Path) checkConvex(a, b, c r3.Vector) {
	if a == c {
		p.convexity = nonConvex
		return
	}
	turn := b.Sub(a).Cross(c.Sub(b)).Dot(p.Up)
	sign := 0
	if Epsilon < turn {
		sign = 1
	} else if turn < -Epsilon {
		sign = -1
	}
	if sign == 0 {
		return
	} else if p.convexitySign == 0 {
		p.convexitySign = sign
	} else if sign != p.convexitySign {
		p.convexity = nonConvex
	}
}

// ComputeConvexity folds the turns at all points into the path's convexity and returns whether it is convex.
func (p *Path) ComputeConvexity() bool {
	for i := 0; i < p.NumPoints && p.convexity == convex; i++ {
		p.UpdateConvexity(i)
	}
	return p.IsConvex()
}

// IsConvex returns true if no turn seen so far disagrees with the others.
func (p *Path) IsConvex() bool {
	return p.convexity == convex
}

// ConvexitySign returns the turn direction around the up vector seen so far: 1 for counter clockwise, -1 for clockwise, and 0 if no turn has been seen.
func (p *Path) ConvexitySign() int {
	return p.convexitySign
}

////////////////////////////////////////////////////////////////

// BuildEdgeOctree indexes all valid edges. It does nothing if an octree was already built.
func (p *Path) BuildEdgeOctree() {
	p.buildEdgeOctree(nil)
}

// BuildPartialEdgeOctree indexes the valid edges i for which mask[i] is set. It does nothing if an octree was already built.
func (p *Path) BuildPartialEdgeOctree(mask []bool) {
	if len(mask) < p.NumEdges {
		panic(fmt.Sprintf("bug: edge mask of length %d for %d edges", len(mask), p.NumEdges))
	}
	p.buildEdgeOctree(mask)
}

func (p *Path) buildEdgeOctree(mask []bool) {
	if p.octree != nil {
		return
	}
	center, extent := r3.Vector{}, octreeMargin
	if !p.Bounds.IsEmpty() {
		center = p.Bounds.Center()
		extent += p.Bounds.Extent().Norm()
	}
	p.octree = NewEdgeOctree(center, extent)
	for i, e := range p.Edges {
		if mask != nil && !mask[i] || !p.IsEdgeValid(e) {
			continue
		}
		p.octree.Insert(i, e.Bounds)
	}
}

// EdgeOctree returns the edge octree, or nil if it has not been built.
func (p *Path) EdgeOctree() *EdgeOctree {
	return p.octree
}

// findOverlappingEdges calls fn with the index of every edge whose bounds intersect b, using the octree when built and a linear scan over valid edges otherwise.
func (p *Path) findOverlappingEdges(b Box, fn func(int) bool) {
	if p.octree != nil {
		p.octree.FindOverlapping(b, fn)
		return
	}
	for i, e := range p.Edges {
		if e.Bounds.Intersects(b) && p.IsEdgeValid(e) && !fn(i) {
			return
		}
	}
}

////////////////////////////////////////////////////////////////

// AddExtra attaches an edge extra. When immediate is set, all edges are processed right away followed by ProcessingDone, and the extra is not kept. Otherwise the extra is queued for ComputeEdgeExtra and ComputeAllEdgeExtra.
func (p *Path) AddExtra(x EdgeExtra, immediate bool) EdgeExtra {
	if !immediate {
		p.extras = append(p.extras, x)
		return x
	}
	for i := range p.Edges {
		visitEdge(x, p, i)
	}
	x.ProcessingDone(p)
	return x
}

// NumExtras returns the number of queued extras.
func (p *Path) NumExtras() int {
	return len(p.extras)
}

// ComputeEdgeExtra processes edge i with all queued extras. Edges may be processed in any order or concurrently from different goroutines, as long as each edge is processed once and ExtraComputingDone is called after all of them.
func (p *Path) ComputeEdgeExtra(i int) {
	for _, x := range p.extras {
		visitEdge(x, p, i)
	}
}

// ComputeAllEdgeExtra processes all edges with all queued extras and finishes them.
func (p *Path) ComputeAllEdgeExtra() {
	for i := range p.Edges {
		p.ComputeEdgeExtra(i)
	}
	p.ExtraComputingDone()
}

// ExtraComputingDone calls ProcessingDone on all queued extras and removes them from the path.
func (p *Path) ExtraComputingDone() {
	for _, x := range p.extras {
		x.ProcessingDone(p)
	}
	p.extras = nil
}

////////////////////////////////////////////////////////////////

// FindClosestIntersection returns the intersection of seg with the path's edges that lies closest to seg.A, with the index of the edge in Index. The result is invalid when nothing intersects. Edges are gated by the angle window of details and tested with its tolerance and strictness.
func (p *Path) FindClosestIntersection(details *IntersectionDetails, seg Segment) ClosestPosition {
	return p.findClosestIntersection(details, seg, nil)
}

// FindClosestIntersectionWithApproach is like FindClosestIntersection, and additionally folds the closest point on every tested edge into approach, whether or not the edge intersects. This gives the nearest approach of the path to seg even when there is no intersection.
func (p *Path) FindClosestIntersectionWithApproach(details *IntersectionDetails, seg Segment, approach *ClosestPosition) ClosestPosition {
	return p.findClosestIntersection(details, seg, approach)
}

func (p *Path) findClosestIntersection(details *IntersectionDetails, seg Segment, approach *ClosestPosition) ClosestPosition {
	closest := NewClosestPosition(seg.A)
	if !p.Bounds.Intersects(seg.Bounds) {
		return closest
	}

	p.findOverlappingEdges(seg.Bounds, func(i int) bool {
		e := p.Edges[i]
		if details.WantsDotCheck && !details.CheckDot(math.Abs(seg.Dot(e.Dir))) {
			return true
		}

		_, onPath, ok := seg.FindIntersection(p.Pos(e.Start), p.Pos(e.End), details.ToleranceSquared, details.Strictness)
		if approach != nil {
			approach.update(onPath, i, details.TieBreak)
		}
		if ok {
			closest.update(onPath, i, details.TieBreak)
		}
		return true
	})
	return closest
}
