package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/math3d"
)

const (

	// Floating base (position + quaternion) plus three joints per leg.
	DimQ = 7 + 3*contact.NumPoints

	// Floating base twist plus three joints per leg.
	DimV = 6 + 3*contact.NumPoints

	// One torque per actuated joint.
	DimU = 3 * contact.NumPoints
)

// ErrDimension is returned when a vector in the problem has the wrong size.
var ErrDimension = errors.New("wrong dimension")

// Barrier holds the interior point settings applied to the inequality
// constraints (joint limits, torque limits, friction cones).
type Barrier struct {
	Param              float64
	FractionToBoundary float64
}

// DefaultBarrier is what the A1 flying trot is solved with.
var DefaultBarrier = Barrier{
	Param:              1e-3,
	FractionToBoundary: 0.995,
}

func (b Barrier) validate() error {
	if !finite(b.Param) || b.Param <= 0 {
		return fmt.Errorf("%w: barrier must be positive, got %v", gait.ErrInvalidParameter, b.Param)
	}
	if !finite(b.FractionToBoundary) || b.FractionToBoundary <= 0 || b.FractionToBoundary >= 1 {
		return fmt.Errorf("%w: fraction to boundary must be in (0, 1), got %v", gait.ErrInvalidParameter, b.FractionToBoundary)
	}
	return nil
}

// Problem is everything an optimizer needs to solve a planning session. The
// robot vectors are passed through untouched.
type Problem struct {
	Timeline *gait.Timeline
	Grid     *gait.Grid

	// Reference centre of mass, used for the initial guess.
	CoM *gait.CoMReference

	Q0      []float64
	V0      []float64
	QWeight []float64
	VWeight []float64
	UWeight []float64

	// Weights applied at impact knots, when a foot lands.
	QWeightImpact []float64
	VWeightImpact []float64

	// Per-axis weights on tracking the swing foot and centre of mass
	// references.
	FootTrackWeight math3d.Vector3
	CoMWeight       math3d.Vector3

	Barrier Barrier

	// Total mass in kg.
	Mass float64
}

// Horizon returns the planning horizon of the timeline.
func (p *Problem) Horizon() float64 {
	return p.Timeline.Horizon()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func weight(name string, v math3d.Vector3) error {
	if !v.Finite() || v.X < 0 || v.Y < 0 || v.Z < 0 {
		return fmt.Errorf("%w: %s must be finite and non-negative, got %s", gait.ErrInvalidParameter, name, v)
	}
	return nil
}

func dim(name string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%w: %s has %d elements, expected %d", ErrDimension, name, len(v), n)
	}
	return nil
}

// Validate checks that the problem is complete and every vector is sized to
// the robot.
func (p *Problem) Validate() error {
	if p.Timeline == nil || p.Grid == nil {
		return errors.New("problem has no timeline or grid")
	}

	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %v", gait.ErrInvalidParameter, p.Mass)
	}

	checks := []struct {
		name string
		v    []float64
		n    int
	}{
		{"q0", p.Q0, DimQ},
		{"v0", p.V0, DimV},
		{"q_weight", p.QWeight, DimV},
		{"v_weight", p.VWeight, DimV},
		{"u_weight", p.UWeight, DimU},
		{"q_weight_impact", p.QWeightImpact, DimV},
		{"v_weight_impact", p.VWeightImpact, DimV},
	}

	for _, c := range checks {
		if err := dim(c.name, c.v, c.n); err != nil {
			return err
		}
	}

	if err := weight("foot_track_weight", p.FootTrackWeight); err != nil {
		return err
	}

	if err := weight("com_weight", p.CoMWeight); err != nil {
		return err
	}

	return p.Barrier.validate()
}

// Solution is a trajectory sampled at every knot of the grid.
type Solution struct {
	Times []float64
	Q     [][]float64
	V     [][]float64

	// Contact forces in the world frame. Inactive contacts have zero force.
	F [][contact.NumPoints]math3d.Vector3
}

// Stats are the solver diagnostics.
type Stats struct {
	Iterations int
	InitialKKT float64
	KKT        float64
	Converged  bool
}

func (s Stats) String() string {
	return fmt.Sprintf("&Stats{iter=%d kkt0=%0.3e kkt=%0.3e converged=%v}", s.Iterations, s.InitialKKT, s.KKT, s.Converged)
}

// Optimizer solves trajectory optimization problems. Implementations may use
// several workers, but must stop when ctx is done.
type Optimizer interface {
	Solve(ctx context.Context, p *Problem) (*Solution, *Stats, error)
	KKTError(ctx context.Context, p *Problem, s *Solution) (float64, error)
}

// Viewer displays a solved trajectory.
type Viewer interface {
	Display(p *Problem, s *Solution) error
}
