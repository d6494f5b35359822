package trot

import (
	"context"
	"errors"
	"testing"

	"github.com/adammck/trot/gait"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	calls   *[]string
	bootErr error
	runErr  error
}

func (r *recorder) Name() string {
	return r.name
}

func (r *recorder) Boot() error {
	*r.calls = append(*r.calls, "boot:"+r.name)
	return r.bootErr
}

func (r *recorder) Run(ctx context.Context, p *Plan) error {
	*r.calls = append(*r.calls, "run:"+r.name)
	return r.runErr
}

func TestPlannerRunsInOrder(t *testing.T) {
	var calls []string
	p := NewPlanner(gait.Params{})
	p.Add(&recorder{name: "a", calls: &calls})
	p.Add(&recorder{name: "b", calls: &calls})

	require.NoError(t, p.Boot())
	plan, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"boot:a", "boot:b", "run:a", "run:b"}, calls)
	assert.NotEqual(t, uuid.Nil, plan.ID)
}

func TestPlannerStopsAtFirstError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	p := NewPlanner(gait.Params{})
	p.Add(&recorder{name: "a", calls: &calls, runErr: boom})
	p.Add(&recorder{name: "b", calls: &calls})

	plan, err := p.Run(context.Background())
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "while running a")
	assert.Equal(t, []string{"run:a"}, calls)
}

func TestPlannerBootError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	p := NewPlanner(gait.Params{})
	p.Add(&recorder{name: "a", calls: &calls, bootErr: boom})

	err := p.Boot()
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "while booting a")
}

func TestPlannerCancelled(t *testing.T) {
	var calls []string
	p := NewPlanner(gait.Params{})
	p.Add(&recorder{name: "a", calls: &calls})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, calls)
}

func TestPlannersHaveDistinctIDs(t *testing.T) {
	a := NewPlanner(gait.Params{})
	b := NewPlanner(gait.Params{})
	assert.NotEqual(t, a.Plan.ID, b.Plan.ID)
}
