package paths

// Reserved metadata identifiers.
const (
	ClosedLoopIdentifier = "IsClosed"
	HoleIdentifier       = "IsHole"
)

// Metadata holds values attached to a whole point collection rather than to single points, keyed by identifier.
type Metadata map[string]any

func (m Metadata) flag(key string) bool {
	v, ok := m[key].(bool)
	return ok && v
}

// SetClosedLoop marks the collection as a closed loop or an open path.
func SetClosedLoop(m Metadata, closed bool) {
	m[ClosedLoopIdentifier] = closed
}

// IsClosedLoop returns true if the collection is marked as a closed loop. Unmarked collections are open.
func IsClosedLoop(m Metadata) bool {
	return m.flag(ClosedLoopIdentifier)
}

// SetIsHole marks the collection as a hole. Clearing the mark removes the entry.
func SetIsHole(m Metadata, hole bool) {
	if !hole {
		delete(m, HoleIdentifier)
		return
	}
	m[HoleIdentifier] = true
}

// IsHole returns true if the collection is marked as a hole.
func IsHole(m Metadata) bool {
	return m.flag(HoleIdentifier)
}

// MakePath builds a path through points, closed when the metadata marks it as a closed loop.
func MakePath(points Points, m Metadata, expansion float64) *Path {
	return NewPath(points, IsClosedLoop(m), expansion)
}
