// Package flow models the estimator's screen sequence as a state machine:
// Intro, RetirementGoals, PersonalInfo, Loading and Result. The caller owns
// the machine; the computation runs asynchronously while Loading, and a
// restart discards whatever is still in flight.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"retirement-planner/internal/planner"
)

type State int

const (
	Intro State = iota
	RetirementGoals
	PersonalInfo
	Loading
	Result
)

func (s State) String() string {
	switch s {
	case Intro:
		return "intro"
	case RetirementGoals:
		return "retirement_goals"
	case PersonalInfo:
		return "personal_info"
	case Loading:
		return "loading"
	case Result:
		return "result"
	}
	return "unknown"
}

// ErrInvalidTransition is returned when an action does not apply to the
// current state.
var ErrInvalidTransition = errors.New("invalid transition")

// Pension bounds of the goals form.
const (
	MinMonthlyPension = 100_000
	MaxMonthlyPension = 100_000_000
)

// Draft is the form data collected so far.
type Draft struct {
	RetirementAge  int
	MonthlyPension float64
	CurrentAge     int
	SavedMoney     float64
}

func (d Draft) Inputs() planner.Inputs {
	return planner.Inputs{
		CurrentAge:     d.CurrentAge,
		RetirementAge:  d.RetirementAge,
		MonthlyPension: d.MonthlyPension,
		SavedMoney:     d.SavedMoney,
	}
}

// Computer runs the projection; *planner.Planner implements it.
type Computer interface {
	Compute(in planner.Inputs) (planner.Result, error)
}

var _ Computer = (*planner.Planner)(nil)

// Outcome is delivered once per submitted computation. Stale outcomes
// belong to a computation superseded by Restart and must be discarded.
type Outcome struct {
	Result planner.Result
	Err    error
	Stale  bool
}

type Machine struct {
	computer Computer
	delay    time.Duration

	mu      sync.Mutex
	state   State
	draft   Draft
	result  *planner.Result
	lastErr error
	gen     uint64
	cancel  context.CancelFunc
}

// New creates a machine in Intro. delay is the minimum time spent on the
// loading screen.
func New(c Computer, delay time.Duration) *Machine {
	return &Machine{computer: c, delay: delay}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Draft() Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Result returns the latest result while in the Result state.
func (m *Machine) Result() (planner.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Result || m.result == nil {
		return planner.Result{}, false
	}
	return *m.result, true
}

// LastError is the error of the most recent failed computation.
func (m *Machine) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Intro {
		return ErrInvalidTransition
	}
	m.state = RetirementGoals
	return nil
}

func (m *Machine) SubmitGoals(retirementAge int, monthlyPension float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != RetirementGoals {
		return ErrInvalidTransition
	}

	if retirementAge < planner.MinRetirementAge || retirementAge > planner.MaxRetirementAge {
		return &planner.InvalidInputError{Field: "retirement_age", Value: retirementAge, Reason: "must be between 55 and 100"}
	}
	if monthlyPension < MinMonthlyPension || monthlyPension > MaxMonthlyPension {
		return &planner.InvalidInputError{Field: "monthly_pension", Value: monthlyPension, Reason: "must be between 100,000 and 100,000,000"}
	}

	m.draft.RetirementAge = retirementAge
	m.draft.MonthlyPension = monthlyPension
	// a current age left over from a later retirement age no longer fits
	if m.draft.CurrentAge >= retirementAge {
		m.draft.CurrentAge = retirementAge - 1
	}
	m.state = PersonalInfo
	return nil
}

// SubmitPersonalInfo validates the second form, enters Loading and starts
// the computation. The returned channel yields exactly one Outcome.
func (m *Machine) SubmitPersonalInfo(ctx context.Context, currentAge int, savedMoney float64) (<-chan Outcome, error) {
	m.mu.Lock()
	if m.state != PersonalInfo {
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if currentAge < planner.MinCurrentAge || currentAge >= m.draft.RetirementAge {
		m.mu.Unlock()
		return nil, &planner.InvalidInputError{Field: "current_age", Value: currentAge, Reason: "must be at least 18 and below retirement_age"}
	}
	if savedMoney < 0 {
		m.mu.Unlock()
		return nil, &planner.InvalidInputError{Field: "saved_money", Value: savedMoney, Reason: "must not be negative"}
	}

	m.draft.CurrentAge = currentAge
	m.draft.SavedMoney = savedMoney
	m.state = Loading
	m.result = nil
	m.lastErr = nil
	m.gen++
	gen := m.gen
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	in := m.draft.Inputs()
	m.mu.Unlock()

	out := make(chan Outcome, 1)
	go m.run(runCtx, gen, in, out)
	return out, nil
}

func (m *Machine) run(ctx context.Context, gen uint64, in planner.Inputs, out chan<- Outcome) {
	defer close(out)

	var (
		res planner.Result
		err error
	)
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-timer.C:
		}
		timer.Stop()
	}
	if err == nil {
		res, err = m.computer.Compute(in)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		out <- Outcome{Result: res, Err: err, Stale: true}
		return
	}
	m.cancel()
	m.cancel = nil
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		m.lastErr = err
		m.state = PersonalInfo
		out <- Outcome{Err: err}
		return
	}
	m.result = &res
	m.state = Result
	out <- Outcome{Result: res}
}

// Back returns to the previous form. Loading cannot be left this way; use
// Restart.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case RetirementGoals:
		m.state = Intro
	case PersonalInfo:
		m.state = RetirementGoals
	case Result:
		m.state = PersonalInfo
		m.result = nil
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Restart cancels any in-flight computation and returns to Intro. The draft
// is kept so the forms can be prefilled.
func (m *Machine) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = Intro
	m.result = nil
	m.lastErr = nil
}
