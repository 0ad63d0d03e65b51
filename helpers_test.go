package paths

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tdewolff/test"
)

func V(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

func testVector(t *testing.T, got, wanted r3.Vector, msgs ...any) {
	t.Helper()
	if !vectorEquals(got, wanted) {
		test.Fail(t, append(msgs, fmt.Sprintf("%s != %s", vectorString(got), vectorString(wanted)))...)
	}
}

// Square returns the corners of a counter clockwise square in the XY plane.
func Square(cx, cy, size float64) Locations {
	h := size / 2.0
	return Locations{V(cx-h, cy-h, 0.0), V(cx+h, cy-h, 0.0), V(cx+h, cy+h, 0.0), V(cx-h, cy+h, 0.0)}
}

func RandomLocations(n int) Locations {
	locs := make(Locations, n)
	for i := range locs {
		locs[i] = V(rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64())
	}
	return locs
}
