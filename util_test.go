package paths

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tdewolff/test"
)

func TestTile(t *testing.T) {
	var tts = []struct {
		i, n int
		tile int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{-1, 4, 3},
		{-5, 4, 3},
		{9, 4, 1},
		{5, 0, 0},
	}
	for _, tt := range tts {
		t.Run(fmt.Sprint(tt.i, "/", tt.n), func(t *testing.T) {
			test.T(t, tile(tt.i, tt.n), tt.tile)
		})
	}

	test.T(t, clampIndex(-1, 0, 3), 0)
	test.T(t, clampIndex(5, 0, 3), 3)
	test.T(t, clampIndex(2, 0, 3), 2)
}

func TestDegreesToDot(t *testing.T) {
	test.Float(t, degreesToDot(0.0), 1.0)
	test.Float(t, degreesToDot(180.0), -1.0)
	test.Float(t, degreesToDot(-180.0), -1.0)
	test.Float(t, degreesToDot(270.0), -1.0)
	test.FloatDiff(t, degreesToDot(90.0), 0.0, 1e-12)
	test.Float(t, degreesToDot(60.0), 0.5)
}

func TestAngle(t *testing.T) {
	test.Float(t, angle(V(1, 0, 0), V(1, 0, 0), UpVector), 0.0)
	test.Float(t, angle(V(1, 0, 0), V(0, 1, 0), UpVector), math.Pi/2.0)
	test.Float(t, angle(V(1, 0, 0), V(-1, 0, 0), UpVector), math.Pi)
	test.Float(t, angle(V(1, 0, 0), V(0, -1, 0), UpVector), 3.0*math.Pi/2.0)
}

func TestRotateHalfway(t *testing.T) {
	testVector(t, rotateHalfway(V(1, 0, 0), V(0, 1, 0)), V(math.Sqrt2/2.0, math.Sqrt2/2.0, 0))
	testVector(t, rotateHalfway(V(2, 0, 0), V(0, 0, 1)), V(math.Sqrt2, 0, math.Sqrt2))
	testVector(t, rotateHalfway(V(1, 0, 0), V(-1, 0, 0)), V(1, 0, 0))
}

func TestTransform(t *testing.T) {
	tr := NewTransform(V(1, 2, 3))
	testVector(t, tr.Forward(), V(1, 0, 0))
	testVector(t, tr.Up(), V(0, 0, 1))
	testVector(t, tr.TransformPosition(V(1, 0, 0)), V(2, 2, 3))

	tr.Rotation = mgl64.QuatRotate(math.Pi/2.0, mgl64.Vec3{0, 0, 1})
	tr.Scale = V(2, 2, 2)
	testVector(t, tr.Forward(), V(0, 1, 0))
	testVector(t, tr.TransformPosition(V(1, 0, 0)), V(1, 4, 3))

	locs := Locations{V(1, 2, 3)}
	test.T(t, locs.Len(), 1)
	testVector(t, locs.At(0).Location, V(1, 2, 3))
	test.T(t, Transforms{tr}.At(0), tr)
}

func TestBox(t *testing.T) {
	b := EmptyBox()
	test.That(t, b.IsEmpty())
	test.That(t, !b.Intersects(BoxFromPoints(V(0, 0, 0))))
	test.T(t, b.Expand(1.0).IsEmpty(), true)
	test.T(t, b.String(), "Box(empty)")

	b = BoxFromPoints(V(1, 2, 3), V(-1, 0, 5))
	testVector(t, b.Min(), V(-1, 0, 3))
	testVector(t, b.Max(), V(1, 2, 5))
	testVector(t, b.Center(), V(0, 1, 4))
	testVector(t, b.Extent(), V(1, 1, 1))
	test.That(t, b.Contains(V(0, 0, 4)))
	test.That(t, !b.Contains(V(0, 0, 6)))

	e := b.Expand(1.0)
	testVector(t, e.Min(), V(-2, -1, 2))
	test.That(t, e.ContainsBox(b))
	test.That(t, !b.ContainsBox(e))

	// touching boxes intersect
	test.That(t, b.Intersects(BoxFromPoints(V(1, 2, 5), V(3, 3, 6))))
	test.That(t, !b.Intersects(BoxFromPoints(V(1.1, 2, 5), V(3, 3, 6))))

	test.T(t, EmptyBox().Union(b), b)
	test.T(t, b.Union(EmptyBox()), b)
	test.T(t, b.Union(BoxFromPoints(V(10, 10, 10))), BoxFromPoints(V(-1, 0, 3), V(10, 10, 10)))
	test.T(t, b.String(), "Box([-1 0 3]--[1 2 5])")
}
