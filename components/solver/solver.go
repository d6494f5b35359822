package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/adammck/trot"
	"github.com/adammck/trot/math3d"
	"github.com/adammck/trot/optimizer"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "solver",
})

// Robot holds the configuration which is passed through to the optimizer
// as-is.
type Robot struct {
	QStanding []float64
	QWeight   []float64
	VWeight   []float64
	UWeight   []float64
	Mass      float64

	QWeightImpact   []float64
	VWeightImpact   []float64
	FootTrackWeight math3d.Vector3
	CoMWeight       math3d.Vector3
}

// Solver hands the plan to an external optimizer, and optionally to a viewer
// once it has been solved.
type Solver struct {
	opt     optimizer.Optimizer
	robot   Robot
	barrier optimizer.Barrier
	viewer  optimizer.Viewer
}

func New(opt optimizer.Optimizer, robot Robot) *Solver {
	return &Solver{
		opt:     opt,
		robot:   robot,
		barrier: optimizer.DefaultBarrier,
	}
}

// WithBarrier replaces the default interior point settings.
func (s *Solver) WithBarrier(b optimizer.Barrier) *Solver {
	s.barrier = b
	return s
}

// WithViewer sets a viewer to display the solution.
func (s *Solver) WithViewer(v optimizer.Viewer) *Solver {
	s.viewer = v
	return s
}

func (s *Solver) Name() string {
	return "solver"
}

func (s *Solver) Boot() error {
	if s.opt == nil {
		return errors.New("no optimizer")
	}

	if len(s.robot.QStanding) != optimizer.DimQ {
		return fmt.Errorf("%w: q_standing has %d elements, expected %d", optimizer.ErrDimension, len(s.robot.QStanding), optimizer.DimQ)
	}

	return nil
}

// Problem assembles the optimizer input from the plan. The robot starts
// standing still.
func (s *Solver) Problem(p *trot.Plan) *optimizer.Problem {
	q0 := make([]float64, len(s.robot.QStanding))
	copy(q0, s.robot.QStanding)

	return &optimizer.Problem{
		Timeline: p.Timeline,
		Grid:     p.Grid,
		CoM:      p.CoM,
		Q0:       q0,
		V0:       make([]float64, optimizer.DimV),
		QWeight:  s.robot.QWeight,
		VWeight:  s.robot.VWeight,
		UWeight:  s.robot.UWeight,
		Mass:     s.robot.Mass,

		QWeightImpact:   s.robot.QWeightImpact,
		VWeightImpact:   s.robot.VWeightImpact,
		FootTrackWeight: s.robot.FootTrackWeight,
		CoMWeight:       s.robot.CoMWeight,
		Barrier:         s.barrier,
	}
}

func (s *Solver) Run(ctx context.Context, p *trot.Plan) error {
	prob := s.Problem(p)
	if err := prob.Validate(); err != nil {
		return err
	}

	sol, stats, err := s.opt.Solve(ctx, prob)
	if err != nil {
		return err
	}

	l := log.WithField("plan", p.ID)
	l.Infof("initial KKT error: %0.6e", stats.InitialKKT)
	l.Infof("KKT error after convergence: %0.6e", stats.KKT)
	l.Infof("%s", stats)

	p.Problem = prob
	p.Solution = sol
	p.Stats = stats

	if s.viewer != nil {
		if err := s.viewer.Display(prob, sol); err != nil {
			return fmt.Errorf("%w (while displaying solution)", err)
		}
	}

	return nil
}
