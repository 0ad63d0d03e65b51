package paths

import (
	"fmt"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/test"
	"golang.org/x/sync/errgroup"
)

type recordExtra struct {
	calls []string
	done  int
}

func (x *recordExtra) ProcessEdge(p *Path, e PathEdge) {
	x.calls = append(x.calls, fmt.Sprint("edge", e.Start))
}

func (x *recordExtra) ProcessingDone(*Path) {
	x.done++
}

type boundaryExtra struct {
	recordExtra
}

func (x *boundaryExtra) ProcessFirstEdge(p *Path, e PathEdge) {
	x.calls = append(x.calls, fmt.Sprint("first", e.Start))
}

func (x *boundaryExtra) ProcessLastEdge(p *Path, e PathEdge) {
	x.calls = append(x.calls, fmt.Sprint("last", e.Start))
}

func (x *boundaryExtra) ProcessSingleEdge(p *Path, e PathEdge) {
	x.calls = append(x.calls, fmt.Sprint("single", e.Start))
}

func TestEdgeExtraDispatch(t *testing.T) {
	open := NewPath(Locations{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0), V(3, 0, 0)}, false, 0.0)
	closed := NewPath(Square(0, 0, 2), true, 0.0)
	single := NewPath(Locations{V(0, 0, 0), V(1, 0, 0)}, false, 0.0)

	var tts = []struct {
		p        *Path
		boundary []string
		plain    []string
	}{
		{open, []string{"first0", "edge1", "last2"}, []string{"edge0", "edge1", "edge2"}},
		{closed, []string{"first0", "edge1", "edge2", "last3"}, []string{"edge0", "edge1", "edge2", "edge3"}},
		{single, []string{"single0"}, []string{"edge0"}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			b := &boundaryExtra{}
			tt.p.AddExtra(b, true)
			test.T(t, b.calls, tt.boundary)
			test.T(t, b.done, 1)

			r := &recordExtra{}
			tt.p.AddExtra(r, true)
			test.T(t, r.calls, tt.plain)
			test.T(t, tt.p.NumExtras(), 0)
		})
	}
}

func TestEdgeExtraQueued(t *testing.T) {
	p := NewPath(Locations{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0)}, false, 0.0)
	a, b := &boundaryExtra{}, &recordExtra{}
	p.AddExtra(a, false)
	p.AddExtra(b, false)
	test.T(t, p.NumExtras(), 2)

	// edges may come in any order
	p.ComputeEdgeExtra(1)
	p.ComputeEdgeExtra(0)
	test.T(t, a.done, 0)
	p.ExtraComputingDone()
	test.T(t, p.NumExtras(), 0)
	test.T(t, a.calls, []string{"last1", "first0"})
	test.T(t, b.calls, []string{"edge1", "edge0"})
	test.T(t, a.done, 1)
	test.T(t, b.done, 1)

	c := &recordExtra{}
	p.AddExtra(c, false)
	p.ComputeAllEdgeExtra()
	test.T(t, c.calls, []string{"edge0", "edge1"})
	test.T(t, c.done, 1)
	test.T(t, p.NumExtras(), 0)
}

func TestLengthExtra(t *testing.T) {
	p := NewPath(Square(0, 0, 2), true, 0.0)
	x := p.AddExtra(NewLengthExtra(p), true).(*LengthExtra)
	test.Floats(t, x.Data, []float64{2, 2, 2, 2})
	test.Floats(t, x.Cumulative, []float64{2, 4, 6, 8})
	test.Float(t, x.TotalLength, 8.0)
	test.Float(t, x.TotalLength, p.TotalLength)
	test.Float(t, x.Get(3), 2.0)
	test.T(t, x.Len(), 4)

	m := x.Metadata(1, 0.5)
	test.Float(t, m.Position, 3.0)
	test.Float(t, m.Alpha(), 3.0/8.0)

	sq := p.AddExtra(NewLengthSquaredExtra(p), true).(*LengthSquaredExtra)
	test.Floats(t, sq.Data, []float64{4, 4, 4, 4})
}

func TestLengthExtraRandom(t *testing.T) {
	for n := 2; n < 20; n++ {
		locs := RandomLocations(n)
		p := NewPath(locs, n%2 == 0, 0.0)
		x := p.AddExtra(NewLengthExtra(p), true).(*LengthExtra)
		test.FloatDiff(t, x.TotalLength, PathLength(locs, p.ClosedLoop), 1e-9)
		test.FloatDiff(t, x.Cumulative[p.LastEdge], x.TotalLength, 1e-9)
	}
}

func TestLengthExtraConcurrent(t *testing.T) {
	locs := RandomLocations(1000)
	p := NewPath(locs, true, 0.0)
	x := p.AddExtra(NewLengthExtra(p), false).(*LengthExtra)
	normals := p.AddExtra(NewBinormalExtra(p, UpVector), false).(*BinormalExtra)

	const workers = 4
	g := errgroup.Group{}
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < p.NumEdges; i += workers {
				p.ComputeEdgeExtra(i)
			}
			return nil
		})
	}
	test.Error(t, g.Wait())
	p.ExtraComputingDone()

	q := NewPath(locs, true, 0.0)
	want := q.AddExtra(NewLengthExtra(q), true).(*LengthExtra)
	wantNormals := q.AddExtra(NewBinormalExtra(q, UpVector), true).(*BinormalExtra)
	test.T(t, x.Data, want.Data)
	test.T(t, x.Cumulative, want.Cumulative)
	test.T(t, x.TotalLength, want.TotalLength, "independent of edge order")
	test.FloatDiff(t, x.TotalLength, p.TotalLength, 1e-9)
	test.T(t, normals.Data, wantNormals.Data)
}

func TestNormalExtras(t *testing.T) {
	h := math.Sqrt2 / 2.0
	p := NewPath(Locations{V(0, 0, 0), V(10, 0, 0), V(10, 10, 0)}, false, 0.0)

	normals := p.AddExtra(NewNormalExtra(p, UpVector), true).(*NormalExtra)
	testVector(t, normals.Get(0), V(0, 1, 0))
	testVector(t, normals.Get(1), V(-1, 0, 0))

	binormals := p.AddExtra(NewBinormalExtra(p, UpVector), true).(*BinormalExtra)
	testVector(t, binormals.Get(0), V(0, 1, 0))
	testVector(t, binormals.Get(1), V(-h, h, 0))
	testVector(t, binormals.Normals[1], V(-1, 0, 0))

	avg := p.AddExtra(NewAvgNormalExtra(p, UpVector), true).(*AvgNormalExtra)
	testVector(t, avg.Get(0), V(0, 1, 0))
	testVector(t, avg.Get(1), V(-h, h, 0))

	// straight continuation
	p = NewPath(Locations{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0)}, false, 0.0)
	binormals = p.AddExtra(NewBinormalExtra(p, UpVector), true).(*BinormalExtra)
	testVector(t, binormals.Get(1), V(0, 1, 0))
	avg = p.AddExtra(NewAvgNormalExtra(p, UpVector), true).(*AvgNormalExtra)
	testVector(t, avg.Get(1), V(0, 1, 0))
}

func TestAngleExtras(t *testing.T) {
	p := NewPath(Locations{V(0, 0, 0), V(10, 0, 0), V(10, 10, 0)}, false, 0.0)
	half := p.AddExtra(NewHalfAngleExtra(p), true).(*HalfAngleExtra)
	test.Floats(t, half.Data, []float64{math.Pi, math.Pi / 2.0})
	full := p.AddExtra(NewFullAngleExtra(p, UpVector), true).(*FullAngleExtra)
	test.Floats(t, full.Data, []float64{0.0, math.Pi / 2.0})

	// a clockwise turn
	p = NewPath(Locations{V(0, 0, 0), V(10, 0, 0), V(10, -10, 0)}, false, 0.0)
	full = p.AddExtra(NewFullAngleExtra(p, UpVector), true).(*FullAngleExtra)
	test.Float(t, full.Get(1), 3.0*math.Pi/2.0)

	p = NewPath(Square(0, 0, 2), true, 0.0)
	binormals := p.AddExtra(NewBinormalExtra(p, UpVector), true).(*BinormalExtra)
	h := math.Sqrt2 / 2.0
	testVector(t, binormals.Get(0), V(h, h, 0), "the first edge of a closed loop has an incoming edge")
	half = p.AddExtra(NewHalfAngleExtra(p), true).(*HalfAngleExtra)
	full = p.AddExtra(NewFullAngleExtra(p, UpVector), true).(*FullAngleExtra)
	for i := 0; i < 4; i++ {
		test.Float(t, half.Get(i), math.Pi/2.0)
		test.Float(t, full.Get(i), math.Pi/2.0)
	}
}

func TestCustomExtra(t *testing.T) {
	p := NewPath(Locations{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0), V(3, 0, 0)}, false, 0.0)
	x := NewCustomExtra(p, func(p *Path, e PathEdge) r3.Vector {
		return p.Pos(e.End)
	})
	x.First = func(p *Path, e PathEdge) r3.Vector {
		return p.Pos(e.Start)
	}
	sum := 0.0
	x.Done = func(p *Path, data []r3.Vector) {
		for _, v := range data {
			sum += v.X
		}
	}
	p.AddExtra(x, true)
	test.T(t, x.Data, []r3.Vector{V(0, 0, 0), V(2, 0, 0), V(3, 0, 0)})
	test.Float(t, sum, 5.0)

	// single falls back to first, then to edge
	q := NewPath(Locations{V(0, 0, 0), V(1, 0, 0)}, false, 0.0)
	y := NewCustomExtra(q, func(*Path, PathEdge) int { return 1 })
	q.AddExtra(y, true)
	test.T(t, y.Data, []int{1})
	y.First = func(*Path, PathEdge) int { return 2 }
	q.AddExtra(y, true)
	test.T(t, y.Data, []int{2})
	y.Single = func(*Path, PathEdge) int { return 3 }
	q.AddExtra(y, true)
	test.T(t, y.Data, []int{3})

	// closed loops also have a first and a last edge
	c := NewPath(Square(0, 0, 2), true, 0.0)
	z := NewCustomExtra(c, func(*Path, PathEdge) int { return 1 })
	z.First = func(*Path, PathEdge) int { return 2 }
	z.Last = func(*Path, PathEdge) int { return 3 }
	c.AddExtra(z, true)
	test.T(t, z.Data, []int{2, 1, 1, 3})
}
