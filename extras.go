package paths

import (
	"math"

	"github.com/golang/geo/r3"
)

// EdgeExtra is a per-edge computation over a path. ProcessEdge is called for interior edges, ProcessingDone once after a sweep. An extra may also implement FirstEdgeProcessor, LastEdgeProcessor or SingleEdgeProcessor to treat the first and last edge differently; otherwise those edges go to ProcessFirstEdge or ProcessEdge. The first and last edge of a closed loop are dispatched the same way, so an extra that has no boundary on closed loops must check Path.ClosedLoop itself.
//
// ProcessEdge may only write the value of its own edge, so that edges can be processed concurrently. Totals over all edges belong in ProcessingDone.
type EdgeExtra interface {
	ProcessEdge(*Path, PathEdge)
	ProcessingDone(*Path)
}

// FirstEdgeProcessor handles the first edge of a path.
type FirstEdgeProcessor interface {
	ProcessFirstEdge(*Path, PathEdge)
}

// LastEdgeProcessor handles the last edge of a path.
type LastEdgeProcessor interface {
	ProcessLastEdge(*Path, PathEdge)
}

// SingleEdgeProcessor handles the only edge of an open path with two points.
type SingleEdgeProcessor interface {
	ProcessSingleEdge(*Path, PathEdge)
}

// ProcessSingleEdge sends e to x as the only edge of p, falling back to ProcessFirstEdge.
func ProcessSingleEdge(x EdgeExtra, p *Path, e PathEdge) {
	if s, ok := x.(SingleEdgeProcessor); ok {
		s.ProcessSingleEdge(p, e)
		return
	}
	ProcessFirstEdge(x, p, e)
}

// ProcessFirstEdge sends e to x as the first edge of p, falling back to ProcessEdge.
func ProcessFirstEdge(x EdgeExtra, p *Path, e PathEdge) {
	if f, ok := x.(FirstEdgeProcessor); ok {
		f.ProcessFirstEdge(p, e)
		return
	}
	x.ProcessEdge(p, e)
}

// ProcessLastEdge sends e to x as the last edge of p, falling back to ProcessEdge.
func ProcessLastEdge(x EdgeExtra, p *Path, e PathEdge) {
	if l, ok := x.(LastEdgeProcessor); ok {
		l.ProcessLastEdge(p, e)
		return
	}
	x.ProcessEdge(p, e)
}

// visitEdge dispatches edge i of p to x depending on its place in the path.
func visitEdge(x EdgeExtra, p *Path, i int) {
	e := p.Edges[i]
	if p.NumEdges == 1 {
		ProcessSingleEdge(x, p, e)
	} else if i == 0 {
		ProcessFirstEdge(x, p, e)
	} else if i == p.LastEdge {
		ProcessLastEdge(x, p, e)
	} else {
		x.ProcessEdge(p, e)
	}
}

////////////////////////////////////////////////////////////////

// EdgeValues holds one value per edge, indexed by the edge's start point.
type EdgeValues[T any] struct {
	Data []T
}

// NewEdgeValues returns zeroed values for every edge of p.
func NewEdgeValues[T any](p *Path) EdgeValues[T] {
	return EdgeValues[T]{make([]T, p.NumEdges)}
}

// Get returns the value of edge i.
func (v EdgeValues[T]) Get(i int) T {
	return v.Data[i]
}

// Len returns the number of values.
func (v EdgeValues[T]) Len() int {
	return len(v.Data)
}

// ProcessingDone does nothing, it lets extras without a finishing step satisfy EdgeExtra.
func (v EdgeValues[T]) ProcessingDone(*Path) {}

////////////////////////////////////////////////////////////////

// LengthExtra computes edge lengths, and once processing is done their total and a cumulative length per edge end.
type LengthExtra struct {
	EdgeValues[float64]
	TotalLength float64
	Cumulative  []float64 // Cumulative[i] is the length up to the end of edge i
}

func NewLengthExtra(p *Path) *LengthExtra {
	return &LengthExtra{EdgeValues: NewEdgeValues[float64](p)}
}

func (x *LengthExtra) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = p.Pos(e.Start).Distance(p.Pos(e.End))
}

func (x *LengthExtra) ProcessingDone(p *Path) {
	x.Cumulative = make([]float64, len(x.Data))
	sum := 0.0
	for i, d := range x.Data {
		sum += d
		x.Cumulative[i] = sum
	}
	x.TotalLength = sum
}

// Metadata returns the position of the point at alpha along edge i relative to the total length. It requires a finished sweep.
func (x *LengthExtra) Metadata(i int, alpha float64) PositionMetadata {
	pos := x.Cumulative[i] - x.Data[i]*(1.0-alpha)
	return PositionMetadata{Position: pos, TotalLength: x.TotalLength}
}

// LengthSquaredExtra computes squared edge lengths.
type LengthSquaredExtra struct {
	EdgeValues[float64]
}

func NewLengthSquaredExtra(p *Path) *LengthSquaredExtra {
	return &LengthSquaredExtra{NewEdgeValues[float64](p)}
}

func (x *LengthSquaredExtra) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = distSq(p.Pos(e.Start), p.Pos(e.End))
}

// NormalExtra computes the normal of each edge as the cross product of the up vector and the edge direction.
type NormalExtra struct {
	EdgeValues[r3.Vector]
	Up r3.Vector
}

func NewNormalExtra(p *Path, up r3.Vector) *NormalExtra {
	return &NormalExtra{NewEdgeValues[r3.Vector](p), up}
}

func (x *NormalExtra) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = safeNormal(x.Up.Cross(e.Dir))
}

// BinormalExtra computes per edge the direction halfway between the incoming and outgoing edge, oriented to the side of the plain normal. The first edge of an open path has no incoming edge and uses the plain normal, which is also kept in Normals.
type BinormalExtra struct {
	EdgeValues[r3.Vector]
	Up      r3.Vector
	Normals []r3.Vector
}

func NewBinormalExtra(p *Path, up r3.Vector) *BinormalExtra {
	return &BinormalExtra{NewEdgeValues[r3.Vector](p), up, make([]r3.Vector, p.NumEdges)}
}

func (x *BinormalExtra) ProcessFirstEdge(p *Path, e PathEdge) {
	if p.ClosedLoop {
		x.ProcessEdge(p, e)
		return
	}
	n := safeNormal(x.Up.Cross(e.Dir))
	x.Normals[e.Start] = n
	x.Data[e.Start] = n
}

func (x *BinormalExtra) ProcessEdge(p *Path, e PathEdge) {
	n := safeNormal(x.Up.Cross(e.Dir))
	x.Normals[e.Start] = n

	prev := p.DirToPrevPoint(e.Start)
	d := rotateHalfway(prev, e.Dir)
	if d == prev && prev.Dot(e.Dir) < 0.0 {
		// straight continuation, the bisector is the normal itself
		d = n
	}
	if n.Dot(d) < 0.0 {
		d = d.Mul(-1.0)
	}
	x.Data[e.Start] = d
}

// AvgNormalExtra computes per edge the average of the normals of the incoming and outgoing edge. The first edge of an open path uses its own normal.
type AvgNormalExtra struct {
	EdgeValues[r3.Vector]
	Up r3.Vector
}

func NewAvgNormalExtra(p *Path, up r3.Vector) *AvgNormalExtra {
	return &AvgNormalExtra{NewEdgeValues[r3.Vector](p), up}
}

func (x *AvgNormalExtra) ProcessFirstEdge(p *Path, e PathEdge) {
	if p.ClosedLoop {
		x.ProcessEdge(p, e)
		return
	}
	x.Data[e.Start] = safeNormal(x.Up.Cross(e.Dir))
}

func (x *AvgNormalExtra) ProcessEdge(p *Path, e PathEdge) {
	a := safeNormal(x.Up.Cross(p.DirToPrevPoint(e.Start).Mul(-1.0)))
	b := safeNormal(x.Up.Cross(e.Dir))
	x.Data[e.Start] = safeNormal(a.Add(b).Mul(0.5))
}

// HalfAngleExtra computes the angle at each edge's start point between the previous point and the edge, in radians. It is PI for a straight continuation and for the first edge of an open path.
type HalfAngleExtra struct {
	EdgeValues[float64]
}

func NewHalfAngleExtra(p *Path) *HalfAngleExtra {
	return &HalfAngleExtra{NewEdgeValues[float64](p)}
}

func (x *HalfAngleExtra) ProcessFirstEdge(p *Path, e PathEdge) {
	if p.ClosedLoop {
		x.ProcessEdge(p, e)
		return
	}
	x.Data[e.Start] = math.Pi
}

func (x *HalfAngleExtra) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = math.Acos(clamp(p.DirToPrevPoint(e.Start).Dot(e.Dir), -1.0, 1.0))
}

// FullAngleExtra computes the turn at each edge's start point from the incoming direction to the edge direction around the up vector, in [0,2PI). It is zero for a straight continuation and for the first edge of an open path.
type FullAngleExtra struct {
	EdgeValues[float64]
	Up r3.Vector
}

func NewFullAngleExtra(p *Path, up r3.Vector) *FullAngleExtra {
	return &FullAngleExtra{NewEdgeValues[float64](p), up}
}

func (x *FullAngleExtra) ProcessFirstEdge(p *Path, e PathEdge) {
	if p.ClosedLoop {
		x.ProcessEdge(p, e)
		return
	}
	x.Data[e.Start] = 0.0
}

func (x *FullAngleExtra) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = angle(p.DirToPrevPoint(e.Start).Mul(-1.0), e.Dir, x.Up)
}

// CustomExtra computes a value per edge with caller supplied functions. First, Last and Single are optional and default like the other extras: Single to First, First and Last to Edge. First and Last are also called for closed loops.
type CustomExtra[T any] struct {
	EdgeValues[T]
	Edge, First, Last, Single func(*Path, PathEdge) T
	Done                      func(*Path, []T)
}

func NewCustomExtra[T any](p *Path, edge func(*Path, PathEdge) T) *CustomExtra[T] {
	return &CustomExtra[T]{EdgeValues: NewEdgeValues[T](p), Edge: edge}
}

func (x *CustomExtra[T]) ProcessSingleEdge(p *Path, e PathEdge) {
	if x.Single != nil {
		x.Data[e.Start] = x.Single(p, e)
		return
	}
	x.ProcessFirstEdge(p, e)
}

func (x *CustomExtra[T]) ProcessFirstEdge(p *Path, e PathEdge) {
	if x.First != nil {
		x.Data[e.Start] = x.First(p, e)
		return
	}
	x.ProcessEdge(p, e)
}

func (x *CustomExtra[T]) ProcessLastEdge(p *Path, e PathEdge) {
	if x.Last != nil {
		x.Data[e.Start] = x.Last(p, e)
		return
	}
	x.ProcessEdge(p, e)
}

func (x *CustomExtra[T]) ProcessEdge(p *Path, e PathEdge) {
	x.Data[e.Start] = x.Edge(p, e)
}

func (x *CustomExtra[T]) ProcessingDone(p *Path) {
	if x.Done != nil {
		x.Done(p, x.Data)
	}
}
