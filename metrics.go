package paths

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// PathMetrics accumulates the arc length along a sequence of positions. A zero PathMetrics has no length yet, the first call to Add sets its start.
type PathMetrics struct {
	Start, Last r3.Vector
	Length      float64
	Count       int
}

// NewPathMetrics returns metrics starting at start.
func NewPathMetrics(start r3.Vector) PathMetrics {
	m := PathMetrics{}
	m.Reset(start)
	return m
}

// Reset restarts the accumulation at start.
func (m *PathMetrics) Reset(start r3.Vector) {
	m.Start = start
	m.Last = start
	m.Length = 0.0
	m.Count = 1
}

func (m *PathMetrics) started() bool {
	return 0 < m.Count
}

// Add appends a position and returns the accumulated length.
func (m *PathMetrics) Add(loc r3.Vector) float64 {
	m.AddDist(loc)
	return m.Length
}

// AddDist appends a position and returns its distance to the previously added position.
func (m *PathMetrics) AddDist(loc r3.Vector) float64 {
	if !m.started() {
		m.Reset(loc)
		return 0.0
	}
	d := m.Last.Distance(loc)
	m.Length += d
	m.Last = loc
	m.Count++
	return d
}

// IsValid returns true if a non-zero length was accumulated.
func (m PathMetrics) IsValid() bool {
	return 0.0 < m.Length
}

// Time returns the normalized position of distance d along the accumulated length, it is zero when either is zero.
func (m PathMetrics) Time(d float64) float64 {
	if d == 0.0 || m.Length <= 0.0 {
		return 0.0
	}
	return d / m.Length
}

// DistToLast returns the distance between loc and the last added position.
func (m PathMetrics) DistToLast(loc r3.Vector) float64 {
	return m.Last.Distance(loc)
}

// IsLastWithinRange returns true if loc is closer than r to the last added position.
func (m PathMetrics) IsLastWithinRange(loc r3.Vector, r float64) bool {
	return m.DistToLast(loc) < r
}

func (m PathMetrics) String() string {
	return fmt.Sprintf("PathMetrics(count=%d length=%g)", m.Count, m.Length)
}

// PathLength returns the length of the polyline through points, including the closing segment when closed is set.
func PathLength(points Points, closed bool) float64 {
	if points.Len() == 0 {
		return 0.0
	}
	m := NewPathMetrics(points.At(0).Location)
	for i := 1; i < points.Len(); i++ {
		m.Add(points.At(i).Location)
	}
	if closed {
		m.Add(points.At(0).Location)
	}
	return m.Length
}

// PositionMetadata locates a distance along a total length.
type PositionMetadata struct {
	Position    float64
	TotalLength float64
}

// Alpha returns the position relative to the total length.
func (m PositionMetadata) Alpha() float64 {
	if m.TotalLength == 0.0 {
		return 0.0
	}
	return m.Position / m.TotalLength
}

// InvertedAlpha returns one minus Alpha.
func (m PositionMetadata) InvertedAlpha() float64 {
	return 1.0 - m.Alpha()
}
