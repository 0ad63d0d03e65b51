package paths

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// DefaultIntersectionTolerance is the default distance below which two segments are considered to intersect.
const DefaultIntersectionTolerance = 0.001

// ErrInvalidDetails is returned when intersection settings are out of range.
var ErrInvalidDetails = errors.New("invalid intersection details")

// TieBreak selects between candidates at exactly the same distance.
type TieBreak int

// see TieBreak
const (
	TieBreakFirstFound  TieBreak = iota // keep the first candidate in traversal order
	TieBreakLowestIndex                 // keep the candidate with the lowest edge index
)

func (tb TieBreak) String() string {
	switch tb {
	case TieBreakFirstFound:
		return "FirstFound"
	case TieBreakLowestIndex:
		return "LowestIndex"
	}
	return fmt.Sprintf("TieBreak(%d)", int(tb))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (tb *TieBreak) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "FirstFound":
		*tb = TieBreakFirstFound
	case "LowestIndex":
		*tb = TieBreakLowestIndex
	default:
		return fmt.Errorf("unknown tie-break %q", string(b))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (tb TieBreak) MarshalText() ([]byte, error) {
	return []byte(tb.String()), nil
}

////////////////////////////////////////////////////////////////

// IntersectionDetails configures segment intersection tests: the distance tolerance, an optional window on the angle between both segments, and the endpoint strictness. Call Init after changing any field.
type IntersectionDetails struct {
	Tolerance   float64    `yaml:"tolerance"`
	UseMinAngle bool       `yaml:"use_min_angle"`
	MinAngle    float64    `yaml:"min_angle"` // in degrees
	UseMaxAngle bool       `yaml:"use_max_angle"`
	MaxAngle    float64    `yaml:"max_angle"` // in degrees
	Strictness  Strictness `yaml:"strictness"`
	TieBreak    TieBreak   `yaml:"tie_break"`

	ToleranceSquared float64 `yaml:"-"`
	MinDot           float64 `yaml:"-"`
	MaxDot           float64 `yaml:"-"`
	WantsDotCheck    bool    `yaml:"-"`
}

// DefaultIntersectionDetails returns initialized details with the default tolerance, no angle window and strict endpoints.
func DefaultIntersectionDetails() IntersectionDetails {
	d := IntersectionDetails{
		Tolerance:  DefaultIntersectionTolerance,
		MinAngle:   0.0,
		MaxAngle:   90.0,
		Strictness: Strict,
	}
	d.Init()
	return d
}

// Init derives the squared tolerance and the dot product window from the angle settings. A minimum angle bounds the dot product from above and a maximum angle bounds it from below.
func (d *IntersectionDetails) Init() {
	d.ToleranceSquared = d.Tolerance * d.Tolerance
	d.MaxDot, d.MinDot = 1.0, -1.0
	if d.UseMinAngle {
		d.MaxDot = degreesToDot(d.MinAngle)
	}
	if d.UseMaxAngle {
		d.MinDot = degreesToDot(d.MaxAngle)
	}
	d.WantsDotCheck = d.UseMinAngle || d.UseMaxAngle
}

// CheckDot returns true if dot lies within the window derived from the angle settings.
func (d *IntersectionDetails) CheckDot(dot float64) bool {
	return d.MinDot <= dot && dot <= d.MaxDot
}

// Validate returns an error if the settings can never produce an intersection or are malformed.
func (d *IntersectionDetails) Validate() error {
	if d.Tolerance < 0.0 || math.IsNaN(d.Tolerance) {
		return fmt.Errorf("%w: negative tolerance %g", ErrInvalidDetails, d.Tolerance)
	} else if d.UseMinAngle && d.UseMaxAngle && d.MaxAngle < d.MinAngle {
		return fmt.Errorf("%w: maximum angle %g below minimum angle %g", ErrInvalidDetails, d.MaxAngle, d.MinAngle)
	}
	return nil
}

// EdgeIntersectionDetails configures crossing searches between path edges.
type EdgeIntersectionDetails struct {
	IntersectionDetails `yaml:",inline"`

	EnableSelfIntersection bool   `yaml:"enable_self_intersection"`
	CrossingAttributeName  string `yaml:"crossing_attribute_name"`
}

// DefaultEdgeIntersectionDetails returns initialized details for crossing searches, with self intersection enabled.
func DefaultEdgeIntersectionDetails() EdgeIntersectionDetails {
	return EdgeIntersectionDetails{
		IntersectionDetails:    DefaultIntersectionDetails(),
		EnableSelfIntersection: true,
		CrossingAttributeName:  "IsCrossing",
	}
}

// LoadEdgeIntersectionDetails reads YAML encoded details on top of the defaults, then validates and initializes them.
func LoadEdgeIntersectionDetails(r io.Reader) (EdgeIntersectionDetails, error) {
	d := DefaultEdgeIntersectionDetails()
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return d, fmt.Errorf("decode intersection details: %w", err)
	}
	if err := d.Validate(); err != nil {
		return d, err
	}
	d.Init()
	return d, nil
}
