package paths

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
)

// Strictness selects which segment endpoints may not be the closest point of an intersection. Flags can be combined.
type Strictness uint8

// see Strictness
const (
	Loose  Strictness = 0
	MainA  Strictness = 1 << 0 // closest point on the main segment equals its start
	MainB  Strictness = 1 << 1 // closest point on the main segment equals its end
	OtherA Strictness = 1 << 2 // closest point on the other segment equals its start
	OtherB Strictness = 1 << 3 // closest point on the other segment equals its end
	Strict            = MainA | MainB | OtherA | OtherB
)

func (s Strictness) String() string {
	switch s {
	case Loose:
		return "Loose"
	case Strict:
		return "Strict"
	}
	names := []string{}
	for i, name := range []string{"MainA", "MainB", "OtherA", "OtherB"} {
		if s&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// UnmarshalText parses names separated by a vertical bar, such as "MainA|OtherB".
func (s *Strictness) UnmarshalText(b []byte) error {
	*s = Loose
	for _, name := range strings.Split(string(b), "|") {
		switch strings.TrimSpace(name) {
		case "", "Loose":
		case "MainA":
			*s |= MainA
		case "MainB":
			*s |= MainB
		case "OtherA":
			*s |= OtherA
		case "OtherB":
			*s |= OtherB
		case "Strict":
			*s |= Strict
		default:
			return fmt.Errorf("unknown strictness %q", name)
		}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strictness) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

////////////////////////////////////////////////////////////////

// Segment is a line segment from A to B with its unit direction and bounds, the bounds grown by an expansion.
type Segment struct {
	A, B      r3.Vector
	Direction r3.Vector
	Bounds    Box
}

// NewSegment returns the segment from a to b with bounds expanded by expansion on every side.
func NewSegment(a, b r3.Vector, expansion float64) Segment {
	return Segment{
		A:         a,
		B:         b,
		Direction: safeNormal(b.Sub(a)),
		Bounds:    BoxFromPoints(a, b).Expand(expansion),
	}
}

// Dot returns the dot product of the segment's direction and dir.
func (s Segment) Dot(dir r3.Vector) float64 {
	return s.Direction.Dot(dir)
}

// Lerp returns the point at t along the segment, with t in [0,1].
func (s Segment) Lerp(t float64) r3.Vector {
	return s.A.Add(s.B.Sub(s.A).Mul(t))
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// FindIntersection tests the segment against the segment from a2 to b2. It returns the closest points on both segments, and whether they are closer than the square root of tolSq without any of them sitting on an endpoint excluded by strictness.
func (s Segment) FindIntersection(a2, b2 r3.Vector, tolSq float64, strictness Strictness) (r3.Vector, r3.Vector, bool) {
	onSelf, onOther := SegmentClosestPoints(s.A, s.B, a2, b2)
	if strictness&MainA != 0 && onSelf == s.A ||
		strictness&MainB != 0 && onSelf == s.B ||
		strictness&OtherA != 0 && onOther == a2 ||
		strictness&OtherB != 0 && onOther == b2 {
		return onSelf, onOther, false
	}
	return onSelf, onOther, distSq(onSelf, onOther) < tolSq
}

// SegmentClosestPoints returns the pair of closest points between segment p1-q1 and segment p2-q2. Degenerate segments are treated as points. Closest points at a segment's end are returned as that exact endpoint.
func SegmentClosestPoints(p1, q1, p2, q2 r3.Vector) (r3.Vector, r3.Vector) {
	// see Real-Time Collision Detection by C. Ericson, section 5.1.9
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	if a <= Epsilon*Epsilon && e <= Epsilon*Epsilon {
		return p1, p2
	} else if a <= Epsilon*Epsilon {
		s = 0.0
		t = clamp(f/e, 0.0, 1.0)
	} else {
		c := d1.Dot(r)
		if e <= Epsilon*Epsilon {
			t = 0.0
			s = clamp(-c/a, 0.0, 1.0)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0.0 {
				s = clamp((b*f-c*e)/denom, 0.0, 1.0)
			}
			t = (b*s + f) / e
			if t < 0.0 {
				t = 0.0
				s = clamp(-c/a, 0.0, 1.0)
			} else if 1.0 < t {
				t = 1.0
				s = clamp((b-c)/a, 0.0, 1.0)
			}
		}
	}
	return lerpVector(p1, q1, s), lerpVector(p2, q2, t)
}

////////////////////////////////////////////////////////////////

// ClosestPosition is the result of a closest-point search from an origin. It is only meaningful when Valid is set.
type ClosestPosition struct {
	Valid       bool
	Index       int
	Origin      r3.Vector
	Location    r3.Vector
	DistSquared float64
}

// NewClosestPosition returns an invalid result for searches from origin.
func NewClosestPosition(origin r3.Vector) ClosestPosition {
	return ClosestPosition{
		Index:       -1,
		Origin:      origin,
		Location:    origin,
		DistSquared: math.Inf(1),
	}
}

// Update keeps loc if it is strictly closer to the origin than the current location, and returns true if it was kept.
func (c *ClosestPosition) Update(loc r3.Vector, index int) bool {
	return c.update(loc, index, TieBreakFirstFound)
}

// UpdateFrom keeps the location of o if it is valid and strictly closer to the origin of c.
func (c *ClosestPosition) UpdateFrom(o ClosestPosition) bool {
	if !o.Valid {
		return false
	}
	return c.Update(o.Location, o.Index)
}

func (c *ClosestPosition) update(loc r3.Vector, index int, tieBreak TieBreak) bool {
	d := distSq(c.Origin, loc)
	if d < c.DistSquared || tieBreak == TieBreakLowestIndex && c.Valid && d == c.DistSquared && index < c.Index {
		c.Valid = true
		c.Index = index
		c.Location = loc
		c.DistSquared = d
		return true
	}
	return false
}

// Distance returns the distance between origin and location.
func (c ClosestPosition) Distance() float64 {
	if !c.Valid {
		return math.Inf(1)
	}
	return math.Sqrt(c.DistSquared)
}

// Direction returns the unit direction from the origin to the location.
func (c ClosestPosition) Direction() r3.Vector {
	return safeNormal(c.Location.Sub(c.Origin))
}

func (c ClosestPosition) String() string {
	if !c.Valid {
		return "ClosestPosition(invalid)"
	}
	return fmt.Sprintf("ClosestPosition(index=%d location=%s dist=%g)", c.Index, vectorString(c.Location), c.Distance())
}
