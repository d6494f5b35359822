// Package config loads planning files. A planning file describes the robot
// (where its feet start and the vectors passed through to the optimizer), the
// gait, and the solver settings.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/adammck/trot/components/solver"
	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/math3d"
	"github.com/adammck/trot/optimizer"
	"gopkg.in/yaml.v3"
)

// The A1 flying trot. Foot positions and centre of mass are those of the
// standing configuration.
const DefaultYAML = `# trot planning file
robot:
  name: a1
  mass: 12.45
  com: [0.0, 0.0, 0.3181]
  contacts:
    FL_foot: [0.1832, 0.1320, 0.0230]
    RL_foot: [-0.1832, 0.1320, 0.0230]
    FR_foot: [0.1832, -0.1320, 0.0230]
    RR_foot: [-0.1832, -0.1320, 0.0230]
  q_standing: [0, 0, 0.3181, 0, 0, 0, 1,
               0.0, 0.67, -1.3,
               0.0, 0.67, -1.3,
               0.0, 0.67, -1.3,
               0.0, 0.67, -1.3]
  q_weight: [0, 0, 0, 10000, 10000, 10000,
             0.001, 0.001, 0.001,
             0.001, 0.001, 0.001,
             0.001, 0.001, 0.001,
             0.001, 0.001, 0.001]
  v_weight: [100, 100, 100, 100, 100, 100,
             1, 1, 1,
             1, 1, 1,
             1, 1, 1,
             1, 1, 1]
  u_weight: 0.1
  q_weight_impact: [1, 1, 1, 1, 1, 1,
                    100, 100, 100,
                    100, 100, 100,
                    100, 100, 100,
                    100, 100, 100]
  # Scalars are applied to every element.
  v_weight_impact: 100
  foot_track_weight: 1.0e+05
  com_weight: 1.0e+05

gait:
  step_length: [0.15, 0, 0]
  step_height: 0.1
  stance_time: 0.15
  flying_time: 0.1
  t0: 0.15
  # Strides after the first one.
  cycles: 4
  # Either one coefficient for every foot, or a map keyed by frame name.
  friction: 0.6

solver:
  dt: 0.02
  threads: 4
  barrier: 1.0e-03
  fraction_to_boundary: 0.995
`

// Friction is either a single coefficient or one per contact frame. A single
// coefficient is stored under "*".
type Friction map[string]float64

func (f *Friction) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var mu float64
		if err := value.Decode(&mu); err != nil {
			return err
		}
		*f = Friction{"*": mu}
		return nil
	}

	m := map[string]float64{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	*f = Friction(m)
	return nil
}

type Robot struct {
	Name      string               `yaml:"name"`
	Mass      float64              `yaml:"mass"`
	CoM       []float64            `yaml:"com"`
	Contacts  map[string][]float64 `yaml:"contacts"`
	QStanding []float64            `yaml:"q_standing"`
	QWeight   []float64            `yaml:"q_weight"`
	VWeight   []float64            `yaml:"v_weight"`
	UWeight   float64              `yaml:"u_weight"`

	QWeightImpact   []float64 `yaml:"q_weight_impact"`
	VWeightImpact   float64   `yaml:"v_weight_impact"`
	FootTrackWeight float64   `yaml:"foot_track_weight"`
	CoMWeight       float64   `yaml:"com_weight"`
}

type Gait struct {
	StepLength []float64 `yaml:"step_length"`
	StepHeight float64   `yaml:"step_height"`
	StanceTime float64   `yaml:"stance_time"`
	FlyingTime float64   `yaml:"flying_time"`
	T0         float64   `yaml:"t0"`
	Cycles     int       `yaml:"cycles"`
	Friction   Friction  `yaml:"friction"`
}

type Solver struct {
	Dt                 float64 `yaml:"dt"`
	Threads            int     `yaml:"threads"`
	Barrier            float64 `yaml:"barrier"`
	FractionToBoundary float64 `yaml:"fraction_to_boundary"`
}

// Config models a planning file.
type Config struct {
	Robot  Robot  `yaml:"robot"`
	Gait   Gait   `yaml:"gait"`
	Solver Solver `yaml:"solver"`
}

// Default returns the A1 flying trot.
func Default() *Config {
	c, err := Parse([]byte(DefaultYAML))
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %s", err))
	}
	return c
}

// Parse decodes a planning file.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// Load reads a planning file and overlays it on the defaults, so that a file
// only needs to name what it changes. Robot contacts and friction are replaced
// as a whole when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	c.Robot.Contacts = nil
	c.Gait.Friction = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	d := Default()
	if c.Robot.Contacts == nil {
		c.Robot.Contacts = d.Robot.Contacts
	}
	if c.Gait.Friction == nil {
		c.Gait.Friction = d.Gait.Friction
	}

	return c, nil
}

// ErrUnknownContact is returned for frame names which aren't one of the four
// feet. It wraps gait.ErrInvalidParameter.
var ErrUnknownContact = fmt.Errorf("%w: unknown contact", gait.ErrInvalidParameter)

func vector(name string, s []float64) (math3d.Vector3, error) {
	v, err := math3d.FromSlice(s)
	if err != nil {
		return v, fmt.Errorf("%w: %s: %s", gait.ErrInvalidParameter, name, err)
	}
	return v, nil
}

// Params converts the gait section (and the contact placements) into gait
// parameters. Unknown frame names are rejected here; missing ones are left
// for gait.Params.Validate to report.
func (c *Config) Params() (gait.Params, error) {
	p := gait.Params{
		Placements: map[contact.Point]math3d.Vector3{},
		Friction:   map[contact.Point]float64{},
		StepHeight: c.Gait.StepHeight,
		StanceTime: c.Gait.StanceTime,
		FlyingTime: c.Gait.FlyingTime,
		T0:         c.Gait.T0,
		Cycles:     c.Gait.Cycles,
	}

	step, err := vector("step_length", c.Gait.StepLength)
	if err != nil {
		return p, err
	}
	p.StepLength = step

	for _, name := range sortedKeys(c.Robot.Contacts) {
		pt, err := contact.Parse(name)
		if err != nil {
			return p, fmt.Errorf("%w: %s", ErrUnknownContact, name)
		}

		v, err := vector(name, c.Robot.Contacts[name])
		if err != nil {
			return p, err
		}
		p.Placements[pt] = v
	}

	for _, name := range sortedKeys(c.Gait.Friction) {
		mu := c.Gait.Friction[name]
		if name == "*" {
			for _, pt := range contact.Points() {
				p.Friction[pt] = mu
			}
			continue
		}

		pt, err := contact.Parse(name)
		if err != nil {
			return p, fmt.Errorf("%w: %s", ErrUnknownContact, name)
		}
		p.Friction[pt] = mu
	}

	return p, nil
}

// CoM returns the initial centre of mass.
func (c *Config) CoM() (math3d.Vector3, error) {
	return vector("com", c.Robot.CoM)
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// SolverRobot returns the pass-through robot configuration of the solver
// stage. Scalar weights are expanded to one entry per joint or axis.
func (c *Config) SolverRobot() solver.Robot {
	foot := c.Robot.FootTrackWeight
	com := c.Robot.CoMWeight

	return solver.Robot{
		QStanding: c.Robot.QStanding,
		QWeight:   c.Robot.QWeight,
		VWeight:   c.Robot.VWeight,
		UWeight:   fill(optimizer.DimU, c.Robot.UWeight),
		Mass:      c.Robot.Mass,

		QWeightImpact:   c.Robot.QWeightImpact,
		VWeightImpact:   fill(optimizer.DimV, c.Robot.VWeightImpact),
		FootTrackWeight: math3d.Vector3{X: foot, Y: foot, Z: foot},
		CoMWeight:       math3d.Vector3{X: com, Y: com, Z: com},
	}
}

// Barrier returns the interior point settings of the solver section.
func (c *Config) Barrier() optimizer.Barrier {
	return optimizer.Barrier{
		Param:              c.Solver.Barrier,
		FractionToBoundary: c.Solver.FractionToBoundary,
	}
}

// Marshal encodes the config back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// sortedKeys returns the keys of m in order, so that errors are reported
// deterministically. "*" sorts before any frame name, so per-frame friction
// overrides the default.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
