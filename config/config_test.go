package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/math3d"
	"github.com/adammck/trot/optimizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "a1", c.Robot.Name)
	assert.Len(t, c.Robot.QStanding, optimizer.DimQ)
	assert.Len(t, c.Robot.QWeight, optimizer.DimV)
	assert.Len(t, c.Robot.VWeight, optimizer.DimV)
	assert.Equal(t, 0.02, c.Solver.Dt)
	assert.Equal(t, 4, c.Solver.Threads)

	p, err := c.Params()
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, math3d.Vector3{X: 0.15}, p.StepLength)
	assert.Equal(t, 4, p.Cycles)
	assert.Equal(t, math3d.Vector3{X: -0.1832, Y: -0.1320, Z: 0.0230}, p.Placements[contact.RR])
	for _, pt := range contact.Points() {
		assert.Equal(t, 0.6, p.Friction[pt], "%s", pt)
	}

	com, err := c.CoM()
	require.NoError(t, err)
	assert.Equal(t, math3d.Vector3{Z: 0.3181}, com)
}

func TestSolverRobot(t *testing.T) {
	r := Default().SolverRobot()
	assert.Len(t, r.UWeight, optimizer.DimU)
	assert.Equal(t, 0.1, r.UWeight[0])
	assert.Equal(t, 12.45, r.Mass)

	assert.Len(t, r.QWeightImpact, optimizer.DimV)
	assert.Equal(t, 100.0, r.QWeightImpact[6])
	assert.Len(t, r.VWeightImpact, optimizer.DimV)
	assert.Equal(t, 100.0, r.VWeightImpact[17])
	assert.Equal(t, math3d.Vector3{X: 1e5, Y: 1e5, Z: 1e5}, r.FootTrackWeight)
	assert.Equal(t, math3d.Vector3{X: 1e5, Y: 1e5, Z: 1e5}, r.CoMWeight)
}

func TestBarrier(t *testing.T) {
	assert.Equal(t, optimizer.DefaultBarrier, Default().Barrier())
}

func write(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := write(t, `
gait:
  cycles: 0
  friction:
    "*": 0.5
    FL_foot: 0.9
solver:
  dt: 0.01
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Gait.Cycles)
	assert.Equal(t, 0.01, c.Solver.Dt)
	assert.Equal(t, 4, c.Solver.Threads)
	assert.Equal(t, 0.15, c.Gait.StanceTime)
	assert.Len(t, c.Robot.Contacts, 4)

	p, err := c.Params()
	require.NoError(t, err)
	assert.Equal(t, 0.9, p.Friction[contact.FL])
	assert.Equal(t, 0.5, p.Friction[contact.RR])
}

func TestLoadReplacesContacts(t *testing.T) {
	path := write(t, `
robot:
  contacts:
    FL: [1, 0, 0]
    RL: [0, 1, 0]
    FR: [0, 0, 1]
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Robot.Contacts, 3)

	p, err := c.Params()
	require.NoError(t, err)

	// RR is missing, which only gait validation notices.
	err = p.Validate()
	assert.True(t, errors.Is(err, gait.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "RR_foot")
}

func TestParamsUnknownContact(t *testing.T) {
	c := Default()
	c.Robot.Contacts["LF_FOOT"] = []float64{0, 0, 0}

	_, err := c.Params()
	assert.True(t, errors.Is(err, ErrUnknownContact))
	assert.True(t, errors.Is(err, gait.ErrInvalidParameter))
	assert.Contains(t, err.Error(), "LF_FOOT")
}

func TestParamsBadVector(t *testing.T) {
	c := Default()
	c.Gait.StepLength = []float64{0.15, 0}

	_, err := c.Params()
	assert.True(t, errors.Is(err, gait.ErrInvalidParameter))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(write(t, "gait: [1, 2"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	data, err := c.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
