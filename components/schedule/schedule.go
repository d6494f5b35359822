package schedule

import (
	"context"
	"fmt"

	"github.com/adammck/trot"
	"github.com/adammck/trot/gait"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "schedule",
})

// Schedule builds the contact timeline of the plan, and discretizes it.
type Schedule struct {

	// Nominal time between knots.
	dt float64
}

func New(dt float64) *Schedule {
	return &Schedule{dt: dt}
}

func (s *Schedule) Name() string {
	return "schedule"
}

// Boot checks the step size, before there is a horizon to compare it to.
func (s *Schedule) Boot() error {
	if s.dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", gait.ErrInvalidParameter, s.dt)
	}
	return nil
}

func (s *Schedule) Run(ctx context.Context, p *trot.Plan) error {
	tl, err := gait.Build(p.Params)
	if err != nil {
		return err
	}

	g, err := gait.NewGrid(tl, s.dt)
	if err != nil {
		return err
	}

	p.Timeline = tl
	p.Grid = g

	log.WithField("plan", p.ID).Infof("phases=%d horizon=%0.3f N=%d", tl.Len(), tl.Horizon(), g.N())
	return nil
}
