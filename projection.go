package paths

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Projection is the flattening of a path's points onto the plane perpendicular to a normal, used for point-in-polygon tests.
type Projection struct {
	Normal   r3.Vector
	Rotation mgl64.Quat // rotates Normal onto the Z axis
	Points   orb.Ring
	Bounds   orb.Bound
}

// NewProjection returns an empty projection onto the plane perpendicular to normal. A zero normal projects onto the XY plane.
func NewProjection(normal r3.Vector) *Projection {
	normal = safeNormal(normal)
	if normal.Norm2() == 0.0 {
		normal = UpVector
	}
	return &Projection{
		Normal:   normal,
		Rotation: mgl64.QuatBetweenVectors(toVec3(normal), mgl64.Vec3{0.0, 0.0, 1.0}),
	}
}

// Project returns the 2D coordinates of v in the projection plane.
func (pr *Projection) Project(v r3.Vector) orb.Point {
	q := pr.Rotation.Rotate(toVec3(v))
	return orb.Point{q[0], q[1]}
}

func (pr *Projection) updateBounds() {
	if len(pr.Points) == 0 {
		pr.Bounds = orb.Bound{}
		return
	}
	pr.Bounds = pr.Points.Bound()
}

// Area returns the signed area of the projected polygon, positive when counter clockwise.
func (pr *Projection) Area() float64 {
	if len(pr.Points) < 3 {
		return 0.0
	}
	return planar.Area(pr.Points)
}

// IsClockwise returns true if the projected polygon winds clockwise.
func (pr *Projection) IsClockwise() bool {
	return 3 <= len(pr.Points) && pr.Points.Orientation() == orb.CW
}

////////////////////////////////////////////////////////////////

// BuildProjection flattens all points onto the plane perpendicular to normal, replacing any earlier projection.
func (p *Path) BuildProjection(normal r3.Vector) *Projection {
	pr := NewProjection(normal)
	pr.Points = make(orb.Ring, p.NumPoints)
	for i := 0; i < p.NumPoints; i++ {
		pr.Points[i] = pr.Project(p.Pos(i))
	}
	pr.updateBounds()
	p.projection = pr
	return pr
}

// Projection returns the projection, or nil if it has not been built.
func (p *Path) Projection() *Projection {
	return p.projection
}

func (p *Path) ensureProjection() *Projection {
	if p.projection == nil {
		return p.BuildProjection(p.Up)
	}
	return p.projection
}

// OffsetProjection moves the projected points outwards by offset, or inwards for a negative offset, along the average normal of their two adjacent edges. Polygons with fewer than three points only have their bounds grown. The path's 3D points are not affected.
func (p *Path) OffsetProjection(offset float64) {
	pr := p.ensureProjection()
	if math.Abs(offset) < Epsilon {
		return
	} else if len(pr.Points) < 3 {
		if 0.0 < offset {
			pr.Bounds = pr.Bounds.Pad(offset)
		}
		return
	}

	// left-hand normals point inwards for counter clockwise polygons
	sign := -1.0
	if pr.IsClockwise() {
		sign = 1.0
	}

	n := len(pr.Points)
	src := pr.Points.Clone()
	for i := range src {
		a, b, c := src[tile(i-1, n)], src[i], src[tile(i+1, n)]
		nab := leftNormal(a, b)
		nbc := leftNormal(b, c)
		avg := orb.Point{(nab[0] + nbc[0]) * 0.5, (nab[1] + nbc[1]) * 0.5}
		if l := math.Hypot(avg[0], avg[1]); 0.0 < l {
			avg = orb.Point{avg[0] / l, avg[1] / l}
		}
		pr.Points[i] = orb.Point{b[0] + sign*avg[0]*offset, b[1] + sign*avg[1]*offset}
	}
	pr.updateBounds()
}

// leftNormal returns the unit normal to the left of the direction from a to b.
func leftNormal(a, b orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0.0 {
		return orb.Point{}
	}
	return orb.Point{-dy / l, dx / l}
}

// IsInsideProjection returns true if loc projects inside or on the boundary of the projected polygon. The projection is built with the path's up vector if needed.
func (p *Path) IsInsideProjection(loc r3.Vector) bool {
	pr := p.ensureProjection()
	if len(pr.Points) < 3 {
		return false
	}
	pt := pr.Project(loc)
	if !pr.Bounds.Contains(pt) {
		return false
	}
	return planar.RingContains(pr.Points, pt)
}

// Contains returns true if enough of the given points lie inside the path's projected polygon. At least ceil(N*(1-tolerance)) of the N points must be inside, with tolerance clamped to [0,1]: zero requires all points and one requires none. It returns false when no points are given.
func (p *Path) Contains(points Points, tolerance float64) bool {
	n := points.Len()
	if n == 0 {
		return false
	}
	threshold := int(math.Ceil(float64(n)*(1.0-clamp(tolerance, 0.0, 1.0)) - Epsilon))
	if threshold <= 0 {
		return true
	}

	inside := 0
	for i := 0; i < n; i++ {
		if p.IsInsideProjection(points.At(i).Location) {
			inside++
			if threshold <= inside {
				return true
			}
		} else if inside+(n-i-1) < threshold {
			return false
		}
	}
	return false
}

// ContainsPath returns true if the path contains the points of other, see Contains.
func (p *Path) ContainsPath(other *Path, tolerance float64) bool {
	return p.Contains(other.Positions, tolerance)
}
