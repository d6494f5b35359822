package gait

import (
	"testing"

	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwingRef(t *testing.T) {
	p := testParams(0)
	tl, err := Build(p)
	require.NoError(t, err)

	type eg struct {
		point contact.Point
		lift  float64
		land  float64
	}

	examples := []eg{
		{contact.FL, 0.30, 0.55},
		{contact.RR, 0.30, 0.55},
		{contact.RL, 0.15, 0.40},
		{contact.FR, 0.15, 0.40},
	}

	for _, x := range examples {
		ref := SwingRef(tl, x.point)
		swings := ref.Swings()
		require.Len(t, swings, 1, "%s", x.point)

		s := swings[0]
		from := p.Placements[x.point]
		to := from.Add(step)
		assert.InDelta(t, x.lift, s.Lift, 1e-12, "%s lift", x.point)
		assert.InDelta(t, x.land, s.Land, 1e-12, "%s land", x.point)
		assert.Equal(t, from, s.From)
		assert.InDelta(t, 0, to.Distance(s.To), 1e-12)

		mid := (s.Lift + s.Land) / 2
		assert.True(t, ref.InSwing(mid))
		assert.False(t, ref.InSwing(0))

		apex := ref.Position(mid)
		assert.InDelta(t, from.X+step.X/2, apex.X, 1e-12, "%s apex x", x.point)
		assert.InDelta(t, p.StepHeight, apex.Z, 1e-12, "%s apex z", x.point)

		assert.Equal(t, from, ref.Position(0))
		assert.InDelta(t, 0, ref.Position(s.Lift).Distance(from), 1e-12)
		assert.InDelta(t, 0, ref.Position(tl.Horizon()).Distance(to), 1e-12)
	}
}

func TestSwingCountPerStride(t *testing.T) {
	tl, err := Build(testParams(3))
	require.NoError(t, err)

	for _, p := range contact.Points() {
		assert.Len(t, SwingRef(tl, p).Swings(), 4, "%s", p)
	}
}

func TestCoMRef(t *testing.T) {
	tl, err := Build(testParams(2))
	require.NoError(t, err)

	com0 := math3d.Vector3{X: 0.01, Y: 0, Z: 0.29}
	c := CoMRef(tl, com0)

	assert.Equal(t, com0, c.Position(0))

	end := c.Position(tl.Horizon())
	exp := com0.Add(step.MultiplyByScalar(3))
	assert.InDelta(t, 0, end.Distance(exp), 1e-12, "got %s", end)

	// Height is held even when every foot is in the air.
	flight := tl.Phase(2)
	mid := (flight.Start + tl.End(2)) / 2
	assert.Equal(t, com0.Z, c.Position(mid).Z)

	// Moves forwards monotonically.
	prev := c.Position(0).X
	for tt := 0.0; tt <= tl.Horizon(); tt += 0.01 {
		x := c.Position(tt).X
		assert.GreaterOrEqual(t, x, prev-1e-12, "t=%v", tt)
		prev = x
	}
}
