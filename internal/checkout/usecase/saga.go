package usecase

import (
	"context"

	"go.uber.org/zap"
)

// sagaStep is one ordered step of the order-creation workflow. Compensate
// undoes the step's side effect and may be nil for read-only steps.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// checkoutSaga executes steps in order. When a step fails, the compensations
// of every completed step run in reverse so the back office is not left with
// half of a split order. Compensation failures are logged with enough
// context for manual reconciliation; there is no transaction to lean on.
type checkoutSaga struct {
	logger *zap.Logger
}

func (s *checkoutSaga) execute(ctx context.Context, steps []sagaStep) error {
	completed := make([]sagaStep, 0, len(steps))

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			s.logger.Warn("saga step failed, compensating",
				zap.String("step", step.name), zap.Int("completedSteps", len(completed)),
				zap.Error(err))
			s.compensate(ctx, completed)
			return err
		}
		completed = append(completed, step)
	}

	return nil
}

func (s *checkoutSaga) compensate(ctx context.Context, completed []sagaStep) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed, manual reconciliation required",
				zap.String("step", step.name), zap.Error(err))
		}
	}
}
