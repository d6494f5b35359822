package gait

import (
	"math"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
)

// stance is a maximal run of phases during which a foot is on the ground.
type stance struct {
	start float64
	end   float64
	at    math3d.Vector3
}

// Swing is the flight of a single foot between two stances.
type Swing struct {
	Lift float64
	Land float64
	From math3d.Vector3
	To   math3d.Vector3
}

// FootRef is the reference position of a single foot over the horizon. Feet
// stay put while in contact, and follow an arc of StepHeight between lift-off
// and touchdown.
type FootRef struct {
	Point   contact.Point
	height  float64
	stances []stance
	swings  []Swing
}

// SwingRef reads the stances of the given point out of the timeline.
func SwingRef(tl *Timeline, p contact.Point) *FootRef {
	ref := &FootRef{
		Point:  p,
		height: tl.params.StepHeight,
	}

	for i, ph := range tl.phases {
		if !ph.Status.IsActive(p) {
			continue
		}

		n := len(ref.stances)
		if n > 0 && ref.stances[n-1].end == ph.Start {
			ref.stances[n-1].end = tl.End(i)
			continue
		}

		ref.stances = append(ref.stances, stance{
			start: ph.Start,
			end:   tl.End(i),
			at:    ph.Status.Placement(p),
		})
	}

	for i := 1; i < len(ref.stances); i++ {
		prev := ref.stances[i-1]
		next := ref.stances[i]
		ref.swings = append(ref.swings, Swing{
			Lift: prev.end,
			Land: next.start,
			From: prev.at,
			To:   next.at,
		})
	}

	return ref
}

// Swings returns a copy of every swing of the foot.
func (f *FootRef) Swings() []Swing {
	out := make([]Swing, len(f.swings))
	copy(out, f.swings)
	return out
}

// InSwing returns true if the foot is in the air at time t.
func (f *FootRef) InSwing(t float64) bool {
	_, ok := f.swingAt(t)
	return ok
}

func (f *FootRef) swingAt(t float64) (Swing, bool) {
	for _, s := range f.swings {
		if t >= s.Lift && t < s.Land {
			return s, true
		}
	}
	return Swing{}, false
}

// Position returns the reference position of the foot at time t.
func (f *FootRef) Position(t float64) math3d.Vector3 {
	if s, ok := f.swingAt(t); ok {
		r := (t - s.Lift) / (s.Land - s.Lift)

		// Horizontal movement is a cosine from 0 to 1, so the foot leaves and
		// lands with zero velocity. Height is a half sine.
		v := s.From.Lerp(s.To, 0.5-(math.Cos(r*math.Pi)/2))
		v.Z = s.From.Z + (s.To.Z-s.From.Z)*r + f.height*math.Sin(r*math.Pi)
		return v
	}

	if len(f.stances) == 0 {
		return math3d.ZeroVector3
	}

	at := f.stances[0].at
	for _, st := range f.stances {
		if st.start > t {
			break
		}
		at = st.at
	}
	return at
}
