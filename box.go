package paths

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
)

// Box is an axis-aligned bounding box in 3D space, made of one interval per axis. The zero value is a box around the origin, use EmptyBox for a box that contains nothing.
type Box struct {
	X, Y, Z r1.Interval
}

// EmptyBox returns a box that contains no points.
func EmptyBox() Box {
	return Box{r1.EmptyInterval(), r1.EmptyInterval(), r1.EmptyInterval()}
}

// BoxFromPoints returns the smallest box containing all given points.
func BoxFromPoints(ps ...r3.Vector) Box {
	b := EmptyBox()
	for _, p := range ps {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty returns true if the box contains no points.
func (b Box) IsEmpty() bool {
	return b.X.IsEmpty() || b.Y.IsEmpty() || b.Z.IsEmpty()
}

// Min returns the lower corner.
func (b Box) Min() r3.Vector {
	return r3.Vector{X: b.X.Lo, Y: b.Y.Lo, Z: b.Z.Lo}
}

// Max returns the upper corner.
func (b Box) Max() r3.Vector {
	return r3.Vector{X: b.X.Hi, Y: b.Y.Hi, Z: b.Z.Hi}
}

// Center returns the center of the box.
func (b Box) Center() r3.Vector {
	return r3.Vector{X: b.X.Center(), Y: b.Y.Center(), Z: b.Z.Center()}
}

// Extent returns the half size along each axis.
func (b Box) Extent() r3.Vector {
	if b.IsEmpty() {
		return r3.Vector{}
	}
	return r3.Vector{X: 0.5 * b.X.Length(), Y: 0.5 * b.Y.Length(), Z: 0.5 * b.Z.Length()}
}

// AddPoint returns the box grown to contain p.
func (b Box) AddPoint(p r3.Vector) Box {
	return Box{b.X.AddPoint(p.X), b.Y.AddPoint(p.Y), b.Z.AddPoint(p.Z)}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	} else if b.IsEmpty() {
		return o
	}
	return Box{b.X.Union(o.X), b.Y.Union(o.Y), b.Z.Union(o.Z)}
}

// Expand returns the box grown by d on every side. An empty box stays empty.
func (b Box) Expand(d float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{b.X.Expanded(d), b.Y.Expanded(d), b.Z.Expanded(d)}
}

// Intersects returns true if both boxes share at least one point, touching boxes intersect.
func (b Box) Intersects(o Box) bool {
	return b.X.Intersects(o.X) && b.Y.Intersects(o.Y) && b.Z.Intersects(o.Z)
}

// Contains returns true if p lies inside or on the box.
func (b Box) Contains(p r3.Vector) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// ContainsBox returns true if o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return b.X.ContainsInterval(o.X) && b.Y.ContainsInterval(o.Y) && b.Z.ContainsInterval(o.Z)
}

// Equals returns true if both boxes are equal with tolerance Epsilon.
func (b Box) Equals(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return b.IsEmpty() == o.IsEmpty()
	}
	return vectorEquals(b.Min(), o.Min()) && vectorEquals(b.Max(), o.Max())
}

func (b Box) String() string {
	if b.IsEmpty() {
		return "Box(empty)"
	}
	return fmt.Sprintf("Box([%g %g %g]--[%g %g %g])", b.X.Lo, b.Y.Lo, b.Z.Lo, b.X.Hi, b.Y.Hi, b.Z.Hi)
}
