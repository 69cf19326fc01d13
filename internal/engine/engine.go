package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retirement-planner/internal/metrics"
	"retirement-planner/internal/model"
	"retirement-planner/internal/planner"
	"retirement-planner/internal/profiles"
)

type Engine struct {
	profiles *profiles.Registry
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Engine)

// WithClock sets the clock used for timestamps and the first schedule year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(reg *profiles.Registry, opts ...Option) *Engine {
	e := &Engine{
		profiles: reg,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()
	startedAt := e.now().UTC()

	var allMessages []model.CalculationMessage
	addMessage := func(msg model.CalculationMessage) {
		msg.ID = len(allMessages)
		allMessages = append(allMessages, msg)
	}

	var (
		result  *model.CalculationResult
		display *model.Display
	)
	outcome := model.OutcomeSuccess
	profileLabel := "unknown"

	profileName, pl, err := e.profiles.Resolve(req.Profile)
	if err != nil {
		addMessage(model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeUnknownProfile,
			Field:   "profile",
			Message: err.Error(),
		})
		outcome = model.OutcomeFailure
	} else {
		profileLabel = profileName
		if pl.Assumptions().BaseYear == 0 {
			pl = pl.WithBaseYear(startedAt.Year())
		}

		res, err := pl.Compute(toInputs(req.Inputs))
		if err != nil {
			addMessage(messageForError(err))
			outcome = model.OutcomeFailure
		} else {
			result, display = Render(res, req.Inputs.RetirementAge)
			for _, w := range warningsFor(res) {
				addMessage(w)
			}
			if res.GoalAmount > 0 {
				metrics.ShortfallRatio.Observe(res.ShortfallAmount / res.GoalAmount)
			}
		}
	}

	elapsed := time.Since(start)
	completedAt := startedAt.Add(elapsed)

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	calculationID := uuid.New().String()
	metrics.CalculationsTotal.WithLabelValues(profileLabel, outcome).Inc()
	metrics.CalculationDuration.WithLabelValues(profileLabel).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("calculation_id", calculationID),
		zap.String("tenant_id", req.TenantID),
		zap.String("profile", profileLabel),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	}
	if outcome == model.OutcomeFailure {
		for _, m := range allMessages {
			if m.Level == model.LevelCritical {
				metrics.CalculationFailures.WithLabelValues(m.Code).Inc()
				fields = append(fields, zap.String("code", m.Code), zap.String("reason", m.Message))
			}
		}
		e.logger.Warn("calculation failed", fields...)
	} else {
		e.logger.Info("calculation completed", fields...)
	}

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calculationID,
			TenantID:               req.TenantID,
			Profile:                profileName,
			CalculationStartedAt:   startedAt.Format(time.RFC3339),
			CalculationCompletedAt: completedAt.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: result,
		Display:           display,
		Messages:          allMessages,
	}
}

// Profiles describes every registered assumption profile.
func (e *Engine) Profiles() []model.ProfileInfo {
	names := e.profiles.Names()
	out := make([]model.ProfileInfo, 0, len(names))
	for _, name := range names {
		a, _ := e.profiles.Get(name)
		out = append(out, model.ProfileInfo{
			Name:             name,
			LifeExpectancy:   a.LifeExpectancy,
			DiscountRate:     a.DiscountRate,
			AccumulationRate: a.AccumulationRate,
			EscalationRate:   a.EscalationRate,
		})
	}
	return out
}

func messageForError(err error) model.CalculationMessage {
	var iie *planner.InvalidInputError
	if errors.As(err, &iie) {
		return model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidInput,
			Field:   iie.Field,
			Message: err.Error(),
		}
	}
	return model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    model.CodeComputationFailed,
		Message: err.Error(),
	}
}

func warningsFor(res planner.Result) []model.CalculationMessage {
	if res.Solutions.NoActionNeeded {
		return []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeNoActionNeeded,
			Message: "Current savings already cover the retirement goal",
		}}
	}

	var msgs []model.CalculationMessage
	for _, s := range []planner.Solution{
		res.Solutions.InvestmentReturn,
		res.Solutions.MonthlySaving,
		res.Solutions.RetirementAge,
	} {
		if !s.Feasible {
			msgs = append(msgs, model.CalculationMessage{
				Level:   model.LevelWarning,
				Code:    model.CodeLeverInfeasible,
				Field:   s.Lever,
				Message: "Adjusting " + s.Lever + " alone cannot close the shortfall",
			})
		}
	}
	return msgs
}
