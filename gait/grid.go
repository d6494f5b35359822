package gait

import (
	"math"
)

// MaxKnots is the largest number of intervals a grid may have.
const MaxKnots = 10000000

// Knot is one point of the time discretization.
type Knot struct {
	Index int
	Time  float64
	Phase int
}

// Grid is a uniform discretization of the horizon into N intervals (N+1
// knots), each knot tagged with the phase active at that time.
type Grid struct {
	knots []Knot
	dt    float64
}

// NewGrid discretizes the timeline with a nominal step of dt. The actual step
// is T/N, with N = floor(T/dt), so that the last knot lands exactly on the
// horizon.
func NewGrid(tl *Timeline, dt float64) (*Grid, error) {
	T := tl.Horizon()
	if !finite(dt) || dt <= 0 {
		return nil, invalid("dt must be positive and finite, got %v", dt)
	}
	if dt > T {
		return nil, invalid("dt (%v) is longer than the horizon (%v)", dt, T)
	}

	// Check before converting, since the quotient can overflow an int.
	q := T / dt
	if !finite(q) || q > MaxKnots {
		return nil, invalid("dt (%v) is too small; horizon of %v would need more than %d knots", dt, T, MaxKnots)
	}

	// Tolerate rounding, so that e.g. 0.7/0.02 isn't floored to 34.
	n := int(math.Floor(q + 1e-9))
	step := T / float64(n)

	knots := make([]Knot, n+1)
	for i := range knots {
		t := float64(i) * step
		if i == n {
			t = T
		}
		knots[i] = Knot{Index: i, Time: t, Phase: tl.PhaseAt(t)}
	}

	log.Debugf("discretized horizon=%0.3f into N=%d (dt=%0.4f)", T, n, step)
	return &Grid{knots: knots, dt: step}, nil
}

// N returns the number of intervals.
func (g *Grid) N() int {
	return len(g.knots) - 1
}

// Dt returns the actual step between knots.
func (g *Grid) Dt() float64 {
	return g.dt
}

// Knot returns the i'th knot.
func (g *Grid) Knot(i int) Knot {
	return g.knots[i]
}

// Knots returns a copy of every knot.
func (g *Grid) Knots() []Knot {
	out := make([]Knot, len(g.knots))
	copy(out, g.knots)
	return out
}

// Switches returns the indices of the knots at which the active phase differs
// from the previous knot.
func (g *Grid) Switches() []int {
	var out []int
	for i := 1; i < len(g.knots); i++ {
		if g.knots[i].Phase != g.knots[i-1].Phase {
			out = append(out, i)
		}
	}
	return out
}
