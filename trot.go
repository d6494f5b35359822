package trot

import (
	"context"
	"fmt"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/math3d"
	"github.com/adammck/trot/optimizer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "trot",
})

// Sample is the reference state at a single knot.
type Sample struct {
	Time     float64
	CoM      math3d.Vector3
	Feet     [contact.NumPoints]math3d.Vector3
	Swinging contact.Set
}

// Plan is a single planning session. Stages fill it in, in order.
type Plan struct {
	ID     uuid.UUID
	Params gait.Params

	Timeline *gait.Timeline
	Grid     *gait.Grid
	CoM      *gait.CoMReference

	// Reference state at every knot of the grid.
	Samples []Sample

	Problem  *optimizer.Problem
	Solution *optimizer.Solution
	Stats    *optimizer.Stats
}

// Stage is a single step of the planning pipeline.
type Stage interface {
	Name() string
	Boot() error
	Run(context.Context, *Plan) error
}

type Planner struct {
	Plan   *Plan
	Stages []Stage
}

// NewPlanner creates a planner for a new session with the given gait.
func NewPlanner(params gait.Params) *Planner {
	return &Planner{
		Plan: &Plan{
			ID:     uuid.New(),
			Params: params,
		},
		Stages: []Stage{},
	}
}

// Add registers a stage, to be run after those already registered.
func (p *Planner) Add(s Stage) {
	p.Stages = append(p.Stages, s)
}

// Boot calls Boot on each stage.
func (p *Planner) Boot() error {
	for _, s := range p.Stages {
		err := s.Boot()
		if err != nil {
			return fmt.Errorf("%w (while booting %s)", err, s.Name())
		}
	}

	return nil
}

// Run runs each stage in turn, and stops at the first error.
func (p *Planner) Run(ctx context.Context) (*Plan, error) {
	l := log.WithField("plan", p.Plan.ID)

	for _, s := range p.Stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.Debugf("running %s", s.Name())
		err := s.Run(ctx, p.Plan)
		if err != nil {
			return nil, fmt.Errorf("%w (while running %s)", err, s.Name())
		}
	}

	l.Infof("planned %d stages", len(p.Stages))
	return p.Plan, nil
}
