package gait

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

// Kind names the support pattern of a phase.
type Kind string

const (
	Standing    Kind = "stand"
	FLRRSupport Kind = "fl+rr"
	RLFRSupport Kind = "rl+fr"
	Flight      Kind = "flight"
)

var (
	flrr = contact.SetOf(contact.FL, contact.RR)
	rlfr = contact.SetOf(contact.RL, contact.FR)
)

// Phase is a time interval with a fixed set of feet on the ground. It ends
// where the next phase starts, or at the horizon.
type Phase struct {
	Index  int
	Start  float64
	Kind   Kind
	Status contact.Status
}

func (ph Phase) String() string {
	return fmt.Sprintf("&Phase{#%d t=%0.3f %s %s}", ph.Index, ph.Start, ph.Kind, ph.Status.Active)
}

// Timeline is the full, time-ordered contact sequence of a planning session.
// It can't be modified once built; every accessor returns copies.
type Timeline struct {
	phases  []Phase
	horizon float64
	params  Params
}

// Build expands the gait parameters into a timeline. It either returns a
// complete timeline or an error wrapping ErrInvalidParameter, never both.
//
// Each stride is a FL+RR support phase, a flight, a RL+FR support phase and
// another flight. The final flight is replaced by a terminal standing phase.
// Every touchdown moves the landing foot by StepLength.
func Build(p Params) (*Timeline, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p = p.clone()
	st := p.StanceTime
	ft := p.FlyingTime

	cur := contact.Status{Active: contact.All}
	for _, pt := range contact.Points() {
		cur.Placements[pt] = p.Placements[pt]
		cur.Friction[pt] = p.Friction[pt]
	}

	phases := make([]Phase, 0, 4*p.Strides()+1)
	push := func(start float64, k Kind, s contact.Status) {
		phases = append(phases, Phase{
			Index:  len(phases),
			Start:  start,
			Kind:   k,
			Status: s,
		})
	}

	push(0, Standing, cur)

	for j := 0; j < p.Strides(); j++ {
		base := p.T0 + float64(j)*p.Period()

		// FL and RR have been in the air since the flight that closed the
		// previous stride. On the first stride they haven't moved yet.
		if j > 0 {
			cur = cur.Displace(p.StepLength, contact.FL, contact.RR)
		}
		push(base, FLRRSupport, cur.WithActive(flrr))
		push(base+st, Flight, cur.WithActive(contact.None))

		cur = cur.Displace(p.StepLength, contact.RL, contact.FR)
		push(base+st+ft, RLFRSupport, cur.WithActive(rlfr))

		if j < p.Cycles {
			push(base+2*st+ft, Flight, cur.WithActive(contact.None))
		} else {
			cur = cur.Displace(p.StepLength, contact.FL, contact.RR)
			push(base+2*st+ft, Standing, cur.WithActive(contact.All))
		}
	}

	// Durations which are valid on their own can still be lost to rounding
	// against T0, or overflow once multiplied by the stride count.
	if err := checkStarts(phases, p.Horizon()); err != nil {
		return nil, err
	}

	tl := &Timeline{
		phases:  phases,
		horizon: p.Horizon(),
		params:  p,
	}

	log.Debugf("built %d phases, horizon=%0.3f", len(phases), tl.horizon)
	return tl, nil
}

// checkStarts returns an error unless every start time is finite and later
// than the one before, and the horizon is finite and after the last start.
func checkStarts(phases []Phase, horizon float64) error {
	for i, ph := range phases {
		if !finite(ph.Start) {
			return invalid("phase %d starts at %v", i, ph.Start)
		}
		if i > 0 && ph.Start <= phases[i-1].Start {
			return invalid("phase %d starts at %v, not after phase %d (%v); durations are too small to represent", i, ph.Start, i-1, phases[i-1].Start)
		}
	}

	last := phases[len(phases)-1].Start
	if !finite(horizon) || horizon <= last {
		return invalid("horizon %v is not after the last phase start %v", horizon, last)
	}

	return nil
}

// Len returns the number of phases.
func (tl *Timeline) Len() int {
	return len(tl.phases)
}

// Phase returns a copy of the i'th phase. It panics if i is out of range.
func (tl *Timeline) Phase(i int) Phase {
	return tl.phases[i]
}

// Phases returns a copy of every phase.
func (tl *Timeline) Phases() []Phase {
	out := make([]Phase, len(tl.phases))
	copy(out, tl.phases)
	return out
}

// Last returns the final (standing) phase.
func (tl *Timeline) Last() Phase {
	return tl.phases[len(tl.phases)-1]
}

// Horizon returns the total planning time.
func (tl *Timeline) Horizon() float64 {
	return tl.horizon
}

// Params returns a copy of the parameters the timeline was built from.
func (tl *Timeline) Params() Params {
	return tl.params.clone()
}

// Starts returns the start time of every phase.
func (tl *Timeline) Starts() []float64 {
	out := make([]float64, len(tl.phases))
	for i, ph := range tl.phases {
		out[i] = ph.Start
	}
	return out
}

// End returns the time at which phase i ends.
func (tl *Timeline) End(i int) float64 {
	if i+1 < len(tl.phases) {
		return tl.phases[i+1].Start
	}
	return tl.horizon
}

// PhaseAt returns the index of the phase active at time t. Times before zero
// map to the first phase, times after the horizon to the last.
func (tl *Timeline) PhaseAt(t float64) int {
	i := sort.Search(len(tl.phases), func(i int) bool {
		return tl.phases[i].Start > t
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// Displacement returns how far the given point moves over the whole
// timeline.
func (tl *Timeline) Displacement(p contact.Point) math3d.Vector3 {
	return tl.Last().Status.Placement(p).Subtract(tl.phases[0].Status.Placement(p))
}

func (tl *Timeline) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "&Timeline{phases=%d horizon=%0.3f}\n", len(tl.phases), tl.horizon)
	for _, ph := range tl.phases {
		fmt.Fprintf(&b, "  %s\n", ph)
	}
	return b.String()
}
