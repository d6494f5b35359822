package gait

import (
	"errors"
	"fmt"
	"math"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
)

// ErrInvalidParameter is wrapped by every validation failure. Match it with
// errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Params describes a flying trot. Durations are in seconds, distances in
// metres, all in the world frame.
type Params struct {

	// Initial world position of every contact point. Must hold an entry for
	// each point.
	Placements map[contact.Point]math3d.Vector3

	// Friction coefficient of every contact point, in (0, 1].
	Friction map[contact.Point]float64

	// Displacement applied to a foot each time it lands.
	StepLength math3d.Vector3

	// Apex height of the swing, above the line between lift-off and
	// touchdown.
	StepHeight float64

	// How long a diagonal pair stays on the ground per half-stride.
	StanceTime float64

	// How long all four feet are in the air between support phases.
	FlyingTime float64

	// The time at which the initial standing phase ends, and the first pair
	// lifts off.
	T0 float64

	// The number of full strides after the first one.
	Cycles int
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func positive(name string, f float64) error {
	if !finite(f) || f <= 0 {
		return invalid("%s must be positive and finite, got %v", name, f)
	}
	return nil
}

// Validate returns an error wrapping ErrInvalidParameter if the parameters
// cannot describe a gait.
func (p Params) Validate() error {
	if err := positive("stance_time", p.StanceTime); err != nil {
		return err
	}

	if err := positive("flying_time", p.FlyingTime); err != nil {
		return err
	}

	if err := positive("t0", p.T0); err != nil {
		return err
	}

	if !finite(p.StepHeight) || p.StepHeight < 0 {
		return invalid("step_height must be non-negative and finite, got %v", p.StepHeight)
	}

	if !p.StepLength.Finite() {
		return invalid("step_length must be finite, got %v", p.StepLength)
	}

	if p.Cycles < 0 {
		return invalid("cycles must not be negative, got %d", p.Cycles)
	}

	for pt := range p.Placements {
		if !pt.Valid() {
			return invalid("placement given for unknown contact point %v", pt)
		}
	}

	for pt := range p.Friction {
		if !pt.Valid() {
			return invalid("friction given for unknown contact point %v", pt)
		}
	}

	for _, pt := range contact.Points() {
		v, ok := p.Placements[pt]
		if !ok {
			return invalid("no initial placement for %s", pt.Frame())
		}
		if !v.Finite() {
			return invalid("placement of %s must be finite, got %v", pt.Frame(), v)
		}

		mu, ok := p.Friction[pt]
		if !ok {
			return invalid("no friction coefficient for %s", pt.Frame())
		}
		if !finite(mu) || mu <= 0 || mu > 1 {
			return invalid("friction coefficient of %s must be in (0, 1], got %v", pt.Frame(), mu)
		}
	}

	return nil
}

// Strides returns the total number of strides, including the first.
func (p Params) Strides() int {
	return p.Cycles + 1
}

// Period returns the duration of one stride: two support phases and two
// flight phases.
func (p Params) Period() float64 {
	return 2*p.StanceTime + 2*p.FlyingTime
}

// Horizon returns the total planning horizon T, which is the start of the
// last phase plus StanceTime. The terminal standing phase begins at
// T0 + Cycles*Period + 2*StanceTime + FlyingTime.
func (p Params) Horizon() float64 {
	return p.T0 + float64(p.Cycles)*p.Period() + 3*p.StanceTime + p.FlyingTime
}

// clone returns a deep copy, so that a timeline never shares maps with the
// caller.
func (p Params) clone() Params {
	c := p
	c.Placements = make(map[contact.Point]math3d.Vector3, len(p.Placements))
	for k, v := range p.Placements {
		c.Placements[k] = v
	}
	c.Friction = make(map[contact.Point]float64, len(p.Friction))
	for k, v := range p.Friction {
		c.Friction[k] = v
	}
	return c
}

// UniformFriction returns a friction map with the same coefficient for every
// contact point.
func UniformFriction(mu float64) map[contact.Point]float64 {
	m := make(map[contact.Point]float64, contact.NumPoints)
	for _, p := range contact.Points() {
		m[p] = mu
	}
	return m
}
