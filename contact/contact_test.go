package contact

import (
	"testing"

	"github.com/adammck/trot/math3d"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	type eg struct {
		in  string
		exp Point
	}

	examples := []eg{
		{"FL", FL},
		{"rl", RL},
		{"FR_foot", FR},
		{"rr_FOOT", RR},
	}

	for _, x := range examples {
		p, err := Parse(x.in)
		assert.NoError(t, err, "parsing %q", x.in)
		assert.Equal(t, x.exp, p)
	}

	_, err := Parse("LF_FOOT")
	assert.Error(t, err)
}

func TestPointNames(t *testing.T) {
	assert.Equal(t, "FL", FL.String())
	assert.Equal(t, "RR_foot", RR.Frame())
	assert.Equal(t, "Point(9)", Point(9).String())
	assert.False(t, Point(-1).Valid())
	assert.False(t, Point(NumPoints).Valid())
}

func TestSet(t *testing.T) {
	s := SetOf(FL, RR)
	assert.True(t, s.Has(FL))
	assert.True(t, s.Has(RR))
	assert.False(t, s.Has(RL))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []Point{FL, RR}, s.Points())
	assert.Equal(t, "{FL RR}", s.String())

	assert.Equal(t, All, s.With(RL).With(FR))
	assert.Equal(t, SetOf(RR), s.Without(FL))
	assert.Equal(t, s, s.With(Point(7)))
	assert.Equal(t, 4, All.Count())
	assert.Equal(t, "{}", None.String())
}

func TestStatusDisplaceCopies(t *testing.T) {
	orig := Status{Active: All}
	orig.Placements[FL] = math3d.Vector3{X: 1}

	moved := orig.Displace(math3d.Vector3{X: 0.5}, FL, RR)

	assert.Equal(t, math3d.Vector3{X: 1}, orig.Placement(FL))
	assert.Equal(t, math3d.Vector3{X: 1.5}, moved.Placement(FL))
	assert.Equal(t, math3d.Vector3{X: 0.5}, moved.Placement(RR))
	assert.Equal(t, math3d.ZeroVector3, moved.Placement(RL))

	off := moved.WithActive(None)
	assert.False(t, off.IsActive(FL))
	assert.True(t, moved.IsActive(FL))
}
