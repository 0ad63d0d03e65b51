package paths

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Epsilon is the tolerance used for comparing floating point values.
const Epsilon = 1e-10

// UpVector is the default up direction, used for normals and convexity when no other direction is given.
var UpVector = r3.Vector{X: 0.0, Y: 0.0, Z: 1.0}

// equal returns true if a and b are equal with tolerance Epsilon.
func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// clamp returns f limited to the range [lo,hi].
func clamp(f, lo, hi float64) float64 {
	return mgl64.Clamp(f, lo, hi)
}

// tile wraps index i into the range [0,n), also for negative i.
func tile(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// clampIndex limits i to the range [lo,hi].
func clampIndex(i, lo, hi int) int {
	if i < lo {
		return lo
	} else if hi < i {
		return hi
	}
	return i
}

// degreesToDot converts an angle in degrees into the cosine of that angle, with the angle clamped to [0,180].
func degreesToDot(deg float64) float64 {
	deg = clamp(math.Abs(deg), 0.0, 180.0)
	return math.Cos(deg * math.Pi / 180.0)
}

////////////////////////////////////////////////////////////////

// safeNormal returns the unit vector along v, or the zero vector if v has no length.
func safeNormal(v r3.Vector) r3.Vector {
	return v.Normalize()
}

func distSq(a, b r3.Vector) float64 {
	return a.Sub(b).Norm2()
}

func lerpVector(a, b r3.Vector, t float64) r3.Vector {
	if t <= 0.0 {
		return a
	} else if 1.0 <= t {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// vectorEquals returns true if a and b are equal with tolerance Epsilon per component.
func vectorEquals(a, b r3.Vector) bool {
	return equal(a.X, b.X) && equal(a.Y, b.Y) && equal(a.Z, b.Z)
}

func vectorString(v r3.Vector) string {
	return fmt.Sprintf("(%g %g %g)", v.X, v.Y, v.Z)
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// angle returns the angle from a to b around the up axis in the range [0,2PI). Parallel vectors give zero and opposite vectors give PI.
func angle(a, b, up r3.Vector) float64 {
	cross := a.Cross(b)
	theta := math.Atan2(cross.Norm(), a.Dot(b))
	if cross.Dot(up) < 0.0 {
		return 2.0*math.Pi - theta
	}
	return theta
}

// rotateHalfway rotates a towards b by half the angle between them. The result has the length of a.
func rotateHalfway(a, b r3.Vector) r3.Vector {
	axis := a.Cross(b).Normalize()
	if axis.Norm2() == 0.0 {
		// parallel or opposite, there is no unique rotation axis
		return a
	}
	theta := math.Acos(clamp(a.Normalize().Dot(b.Normalize()), -1.0, 1.0))
	q := mgl64.QuatRotate(theta*0.5, toVec3(axis))
	return fromVec3(q.Rotate(toVec3(a)))
}

////////////////////////////////////////////////////////////////

// Transform is a pose of a path point: location, orientation and scale.
type Transform struct {
	Location r3.Vector
	Rotation mgl64.Quat
	Scale    r3.Vector
}

// NewTransform returns a transform at the given location with no rotation and unit scale.
func NewTransform(loc r3.Vector) Transform {
	return Transform{
		Location: loc,
		Rotation: mgl64.QuatIdent(),
		Scale:    r3.Vector{X: 1.0, Y: 1.0, Z: 1.0},
	}
}

// Forward returns the rotated X axis of the transform.
func (t Transform) Forward() r3.Vector {
	return fromVec3(t.Rotation.Rotate(mgl64.Vec3{1.0, 0.0, 0.0}))
}

// Up returns the rotated Z axis of the transform.
func (t Transform) Up() r3.Vector {
	return fromVec3(t.Rotation.Rotate(mgl64.Vec3{0.0, 0.0, 1.0}))
}

// TransformPosition maps a position in the local space of the transform to world space.
func (t Transform) TransformPosition(v r3.Vector) r3.Vector {
	scaled := mgl64.Vec3{v.X * t.Scale.X, v.Y * t.Scale.Y, v.Z * t.Scale.Z}
	return t.Location.Add(fromVec3(t.Rotation.Rotate(scaled)))
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform(%s)", vectorString(t.Location))
}

// Points is a read-only indexable view of path poses. A Path borrows it and never modifies it.
type Points interface {
	Len() int
	At(int) Transform
}

// Transforms is a list of poses implementing Points.
type Transforms []Transform

func (ts Transforms) Len() int           { return len(ts) }
func (ts Transforms) At(i int) Transform { return ts[i] }

// Locations is a list of positions implementing Points, each with an identity rotation and unit scale.
type Locations []r3.Vector

func (ls Locations) Len() int           { return len(ls) }
func (ls Locations) At(i int) Transform { return NewTransform(ls[i]) }
