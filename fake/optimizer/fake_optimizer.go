package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
	ocp "github.com/adammck/trot/optimizer"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	gravity = 9.81

	// Residual below which the solution counts as converged.
	tolerance = 1e-8
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "fake/optimizer",
})

// FakeOptimizer stands in for a real trajectory optimizer. It moves the
// floating base along the centre of mass reference, holds the joints at their
// initial configuration, and shares the weight of the robot equally between
// the feet in contact. Knots are computed by a pool of workers.
type FakeOptimizer struct {
	threads int
}

func New(threads int) *FakeOptimizer {
	if threads < 1 {
		threads = 1
	}
	return &FakeOptimizer{threads}
}

// each runs f for every knot index, spread over the workers.
func (o *FakeOptimizer) each(ctx context.Context, n int, f func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.threads)

	for w := 0; w < o.threads; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < n; i += o.threads {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// guess returns the solution before any iteration: standing still with no
// contact forces.
func (o *FakeOptimizer) guess(p *ocp.Problem) *ocp.Solution {
	n := p.Grid.N() + 1
	s := &ocp.Solution{
		Times: make([]float64, n),
		Q:     make([][]float64, n),
		V:     make([][]float64, n),
		F:     make([][contact.NumPoints]math3d.Vector3, n),
	}

	for i, k := range p.Grid.Knots() {
		s.Times[i] = k.Time
		s.Q[i] = append([]float64(nil), p.Q0...)
		s.V[i] = append([]float64(nil), p.V0...)
	}

	return s
}

func (o *FakeOptimizer) Solve(ctx context.Context, p *ocp.Problem) (*ocp.Solution, *ocp.Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if p.CoM == nil {
		return nil, nil, fmt.Errorf("problem has no centre of mass reference")
	}

	s := o.guess(p)
	kkt0, err := o.KKTError(ctx, p, s)
	if err != nil {
		return nil, nil, err
	}

	tl := p.Timeline
	dt := p.Grid.Dt()
	com0 := p.CoM.Position(0)
	weight := p.Mass * gravity

	err = o.each(ctx, len(s.Times), func(i int) error {
		t := s.Times[i]
		com := p.CoM.Position(t)
		vel := p.CoM.Position(t + dt).Subtract(com).MultiplyByScalar(1 / dt)

		d := com.Subtract(com0)
		s.Q[i][0] += d.X
		s.Q[i][1] += d.Y
		s.Q[i][2] += d.Z
		s.V[i][0] = vel.X
		s.V[i][1] = vel.Y
		s.V[i][2] = vel.Z

		st := tl.Phase(p.Grid.Knot(i).Phase).Status
		n := st.Active.Count()
		for _, pt := range st.Active.Points() {
			s.F[i][pt] = math3d.Vector3{Z: weight / float64(n)}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	kkt, err := o.KKTError(ctx, p, s)
	if err != nil {
		return nil, nil, err
	}

	stats := &ocp.Stats{
		Iterations: 1,
		InitialKKT: kkt0,
		KKT:        kkt,
		Converged:  kkt <= tolerance,
	}

	log.Debugf("solved %d knots with %d workers, base moved %0.3fm", len(s.Times), o.threads, p.CoM.Position(p.Horizon()).Distance(com0))
	return s, stats, nil
}

// KKTError returns the largest constraint violation over every knot: forces
// on feet which aren't in contact, vertical force imbalance while supported,
// and friction cone violations.
func (o *FakeOptimizer) KKTError(ctx context.Context, p *ocp.Problem, s *ocp.Solution) (float64, error) {
	n := p.Grid.N() + 1
	if len(s.Times) != n || len(s.Q) != n || len(s.V) != n || len(s.F) != n {
		return 0, fmt.Errorf("%w: solution has %d knots, expected %d", ocp.ErrDimension, len(s.Times), n)
	}

	tl := p.Timeline
	weight := p.Mass * gravity
	worst := make([]float64, n)

	err := o.each(ctx, n, func(i int) error {
		st := tl.Phase(p.Grid.Knot(i).Phase).Status
		r := 0.0
		var sum math3d.Vector3

		for _, pt := range contact.Points() {
			f := s.F[i][pt]
			if !st.IsActive(pt) {
				r = math.Max(r, f.Magnitude())
				continue
			}

			sum = sum.Add(f)
			r = math.Max(r, math.Max(0, -f.Z))
			r = math.Max(r, math.Max(0, f.Horizontal().Magnitude()-st.Friction[pt]*f.Z))
		}

		if st.Active != contact.None {
			r = math.Max(r, math.Abs(sum.Z-weight))
			r = math.Max(r, sum.Horizontal().Magnitude())
		}

		worst[i] = r
		return nil
	})
	if err != nil {
		return 0, err
	}

	kkt := 0.0
	for _, r := range worst {
		kkt = math.Max(kkt, r)
	}
	return kkt, nil
}
