package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-planner/internal/planner"
)

func newPlanner(t *testing.T) *planner.Planner {
	t.Helper()
	a := planner.DefaultAssumptions()
	a.BaseYear = 2025
	p, err := planner.New(a)
	require.NoError(t, err)
	return p
}

// gatedComputer blocks until release is closed.
type gatedComputer struct {
	started chan struct{}
	release chan struct{}
	inner   Computer
}

func (g *gatedComputer) Compute(in planner.Inputs) (planner.Result, error) {
	close(g.started)
	<-g.release
	return g.inner.Compute(in)
}

type failingComputer struct{ err error }

func (f failingComputer) Compute(planner.Inputs) (planner.Result, error) {
	return planner.Result{}, f.err
}

func receive(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case out, ok := <-ch:
		require.True(t, ok, "channel closed without an outcome")
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
	}
	return Outcome{}
}

func toPersonalInfo(t *testing.T, m *Machine) {
	t.Helper()
	require.NoError(t, m.Start())
	require.NoError(t, m.SubmitGoals(65, 2_000_000))
	require.Equal(t, PersonalInfo, m.State())
}

func TestHappyPath(t *testing.T) {
	m := New(newPlanner(t), 0)
	assert.Equal(t, Intro, m.State())

	toPersonalInfo(t, m)
	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 50_000_000)
	require.NoError(t, err)

	out := receive(t, ch)
	require.NoError(t, out.Err)
	assert.False(t, out.Stale)
	assert.Greater(t, out.Result.ShortfallAmount, 0.0)

	assert.Equal(t, Result, m.State())
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, out.Result.GoalAmount, res.GoalAmount)
	assert.Equal(t, 2060, res.TargetYear)

	_, open := <-ch
	assert.False(t, open)
}

func TestInvalidTransitions(t *testing.T) {
	m := New(newPlanner(t), 0)

	assert.ErrorIs(t, m.SubmitGoals(65, 2_000_000), ErrInvalidTransition)
	_, err := m.SubmitPersonalInfo(context.Background(), 30, 0)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, m.Back(), ErrInvalidTransition)

	require.NoError(t, m.Start())
	assert.ErrorIs(t, m.Start(), ErrInvalidTransition)
}

func TestSubmitGoalsValidation(t *testing.T) {
	tests := []struct {
		name    string
		age     int
		pension float64
		field   string
	}{
		{"age below range", 54, 2_000_000, "retirement_age"},
		{"age above range", 101, 2_000_000, "retirement_age"},
		{"pension too small", 65, 99_999, "monthly_pension"},
		{"pension too large", 65, 100_000_001, "monthly_pension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(newPlanner(t), 0)
			require.NoError(t, m.Start())

			err := m.SubmitGoals(tt.age, tt.pension)
			require.ErrorIs(t, err, planner.ErrInvalidInput)
			var ie *planner.InvalidInputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)
			assert.Equal(t, RetirementGoals, m.State())
		})
	}
}

func TestSubmitPersonalInfoValidation(t *testing.T) {
	m := New(newPlanner(t), 0)
	toPersonalInfo(t, m)

	_, err := m.SubmitPersonalInfo(context.Background(), 65, 0)
	assert.ErrorIs(t, err, planner.ErrInvalidInput)
	_, err = m.SubmitPersonalInfo(context.Background(), 17, 0)
	assert.ErrorIs(t, err, planner.ErrInvalidInput)
	_, err = m.SubmitPersonalInfo(context.Background(), 30, -1)
	assert.ErrorIs(t, err, planner.ErrInvalidInput)

	assert.Equal(t, PersonalInfo, m.State())
}

func TestBack(t *testing.T) {
	m := New(newPlanner(t), 0)
	toPersonalInfo(t, m)

	require.NoError(t, m.Back())
	assert.Equal(t, RetirementGoals, m.State())
	require.NoError(t, m.Back())
	assert.Equal(t, Intro, m.State())

	toPersonalInfo(t, m)
	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 50_000_000)
	require.NoError(t, err)
	receive(t, ch)

	require.NoError(t, m.Back())
	assert.Equal(t, PersonalInfo, m.State())
	_, ok := m.Result()
	assert.False(t, ok)

	d := m.Draft()
	assert.Equal(t, 30, d.CurrentAge)
	assert.Equal(t, 65, d.RetirementAge)
}

func TestBackDuringLoadingRejected(t *testing.T) {
	gate := &gatedComputer{started: make(chan struct{}), release: make(chan struct{}), inner: newPlanner(t)}
	m := New(gate, 0)
	toPersonalInfo(t, m)

	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 50_000_000)
	require.NoError(t, err)
	<-gate.started

	assert.Equal(t, Loading, m.State())
	assert.ErrorIs(t, m.Back(), ErrInvalidTransition)

	close(gate.release)
	out := receive(t, ch)
	assert.False(t, out.Stale)
	assert.Equal(t, Result, m.State())
}

func TestComputationErrorReturnsToPersonalInfo(t *testing.T) {
	boom := &planner.ComputationError{Op: "goal", Reason: "degenerate horizon"}
	m := New(failingComputer{err: boom}, 0)
	toPersonalInfo(t, m)

	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 0)
	require.NoError(t, err)

	out := receive(t, ch)
	assert.ErrorIs(t, out.Err, planner.ErrComputation)
	assert.False(t, out.Stale)
	assert.Equal(t, PersonalInfo, m.State())
	assert.ErrorIs(t, m.LastError(), planner.ErrComputation)
}

func TestRestartDiscardsInFlightComputation(t *testing.T) {
	gate := &gatedComputer{started: make(chan struct{}), release: make(chan struct{}), inner: newPlanner(t)}
	m := New(gate, 0)
	toPersonalInfo(t, m)

	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 50_000_000)
	require.NoError(t, err)
	<-gate.started

	m.Restart()
	assert.Equal(t, Intro, m.State())

	close(gate.release)
	out := receive(t, ch)
	assert.True(t, out.Stale)
	assert.Equal(t, Intro, m.State())
	_, ok := m.Result()
	assert.False(t, ok)
}

func TestRestartCancelsLoadingDelay(t *testing.T) {
	m := New(newPlanner(t), time.Hour)
	toPersonalInfo(t, m)

	ch, err := m.SubmitPersonalInfo(context.Background(), 30, 50_000_000)
	require.NoError(t, err)
	m.Restart()

	out := receive(t, ch)
	assert.True(t, out.Stale)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Equal(t, Intro, m.State())
}

func TestCallerCancellationDuringDelay(t *testing.T) {
	m := New(newPlanner(t), time.Hour)
	toPersonalInfo(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.SubmitPersonalInfo(ctx, 30, 50_000_000)
	require.NoError(t, err)
	cancel()

	out := receive(t, ch)
	assert.False(t, out.Stale)
	assert.ErrorIs(t, out.Err, context.Canceled)
	assert.Equal(t, PersonalInfo, m.State())
}

func TestSubmitGoalsClampsLeftoverCurrentAge(t *testing.T) {
	m := New(newPlanner(t), 0)
	require.NoError(t, m.Start())
	require.NoError(t, m.SubmitGoals(80, 2_000_000))
	ch, err := m.SubmitPersonalInfo(context.Background(), 70, 0)
	require.NoError(t, err)
	receive(t, ch)

	m.Restart()
	require.NoError(t, m.Start())
	require.NoError(t, m.SubmitGoals(60, 2_000_000))
	assert.Equal(t, 59, m.Draft().CurrentAge)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "unknown", State(42).String())
}
