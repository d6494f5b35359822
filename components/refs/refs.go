package refs

import (
	"context"
	"errors"

	"github.com/adammck/trot"
	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/math3d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "refs",
})

// Refs samples the foot and centre of mass references at every knot.
type Refs struct {
	com0 math3d.Vector3
}

// New returns a stage which starts the centre of mass reference at com0.
func New(com0 math3d.Vector3) *Refs {
	return &Refs{com0: com0}
}

func (r *Refs) Name() string {
	return "refs"
}

func (r *Refs) Boot() error {
	if !r.com0.Finite() {
		return errors.New("initial centre of mass must be finite")
	}
	return nil
}

func (r *Refs) Run(ctx context.Context, p *trot.Plan) error {
	if p.Timeline == nil || p.Grid == nil {
		return errors.New("no timeline to sample (is the schedule stage missing?)")
	}

	p.CoM = gait.CoMRef(p.Timeline, r.com0)
	p.Samples = make([]trot.Sample, 0, p.Grid.N()+1)

	for _, k := range p.Grid.Knots() {
		s := trot.Sample{
			Time: k.Time,
			CoM:  p.CoM.Position(k.Time),
		}

		for _, pt := range contact.Points() {
			f := p.CoM.Foot(pt)
			s.Feet[pt] = f.Position(k.Time)
			if f.InSwing(k.Time) {
				s.Swinging = s.Swinging.With(pt)
			}
		}

		p.Samples = append(p.Samples, s)
	}

	log.WithField("plan", p.ID).Debugf("sampled %d knots", len(p.Samples))
	return nil
}
