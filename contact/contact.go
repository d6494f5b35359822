package contact

import (
	"fmt"
	"strings"

	"github.com/adammck/trot/math3d"
)

// Point identifies one of the foot contacts of the quadruped. The set is
// closed; the order matches the contact frames of the robot model.
type Point int

const (
	FL Point = iota // Front Left  - 0
	RL              // Rear Left   - 1
	FR              // Front Right - 2
	RR              // Rear Right  - 3

	// NumPoints is the number of contact points. Arrays indexed by Point are
	// sized by this.
	NumPoints = 4
)

var (
	names  = [NumPoints]string{"FL", "RL", "FR", "RR"}
	frames = [NumPoints]string{"FL_foot", "RL_foot", "FR_foot", "RR_foot"}
)

// Points returns every contact point, in order.
func Points() []Point {
	return []Point{FL, RL, FR, RR}
}

// Valid returns true if p is one of the declared contact points.
func (p Point) Valid() bool {
	return p >= 0 && p < NumPoints
}

func (p Point) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Point(%d)", int(p))
	}

	return names[p]
}

// Frame returns the name of the end-effector frame in the robot model.
func (p Point) Frame() string {
	if !p.Valid() {
		return ""
	}

	return frames[p]
}

// Parse accepts either the short name ("FL") or the frame name ("FL_foot"),
// case-insensitively.
func Parse(s string) (Point, error) {
	for _, p := range Points() {
		if strings.EqualFold(s, names[p]) || strings.EqualFold(s, frames[p]) {
			return p, nil
		}
	}

	return -1, fmt.Errorf("unknown contact point: %q", s)
}

// Set is a subset of the contact points, stored as a bitmask.
type Set uint8

const (
	None Set = 0
	All  Set = (1 << NumPoints) - 1
)

// SetOf returns the set containing exactly the given points. Invalid points
// are ignored.
func SetOf(points ...Point) Set {
	var s Set
	for _, p := range points {
		s = s.With(p)
	}
	return s
}

// Has returns true if p is in the set.
func (s Set) Has(p Point) bool {
	return p.Valid() && s&(1<<uint(p)) != 0
}

// With returns a copy of the set with p added.
func (s Set) With(p Point) Set {
	if !p.Valid() {
		return s
	}
	return s | (1 << uint(p))
}

// Without returns a copy of the set with p removed.
func (s Set) Without(p Point) Set {
	if !p.Valid() {
		return s
	}
	return s &^ (1 << uint(p))
}

// Count returns the number of points in the set.
func (s Set) Count() int {
	n := 0
	for _, p := range Points() {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Points returns the members of the set, in order.
func (s Set) Points() []Point {
	pp := make([]Point, 0, NumPoints)
	for _, p := range Points() {
		if s.Has(p) {
			pp = append(pp, p)
		}
	}
	return pp
}

func (s Set) String() string {
	if s == None {
		return "{}"
	}

	parts := make([]string, 0, NumPoints)
	for _, p := range s.Points() {
		parts = append(parts, p.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Status is the contact state of a single phase. Placements and friction are
// stored for every point, including inactive ones, so that an inactive point
// remembers where it will next land. Status is a value type; copying it
// copies the arrays.
type Status struct {
	Active     Set
	Placements [NumPoints]math3d.Vector3
	Friction   [NumPoints]float64
}

// IsActive returns true if the point is in contact during this phase.
func (s Status) IsActive(p Point) bool {
	return s.Active.Has(p)
}

// Placement returns the stored world position of the point.
func (s Status) Placement(p Point) math3d.Vector3 {
	return s.Placements[p]
}

// WithActive returns a copy of the status with the given active set.
func (s Status) WithActive(a Set) Status {
	s.Active = a
	return s
}

// Displace returns a copy of the status with the placement of each given
// point moved by d.
func (s Status) Displace(d math3d.Vector3, points ...Point) Status {
	for _, p := range points {
		s.Placements[p] = s.Placements[p].Add(d)
	}
	return s
}

func (s Status) String() string {
	return fmt.Sprintf("&Status{active=%s}", s.Active)
}
