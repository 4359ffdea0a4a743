package service

import (
	"context"

	"github.com/rs/zerolog"
)

// saga collects compensating actions for a multi-step write against a store
// without transactions. After each successful step the caller registers the
// action that undoes it; on failure Rollback runs them in reverse order.
// A compensation that itself fails is logged and skipped, never retried.
type saga struct {
	logger        *zerolog.Logger
	compensations []sagaStep
}

type sagaStep struct {
	name string
	undo func(context.Context) error
}

func newSaga(logger *zerolog.Logger) *saga {
	return &saga{logger: logger}
}

func (s *saga) onRollback(name string, undo func(context.Context) error) {
	s.compensations = append(s.compensations, sagaStep{name: name, undo: undo})
}

func (s *saga) rollback(ctx context.Context) {
	for i := len(s.compensations) - 1; i >= 0; i-- {
		step := s.compensations[i]
		if err := step.undo(ctx); err != nil {
			s.logger.Error().Err(err).Str("step", step.name).Msg("compensation failed, manual cleanup needed")
		}
	}
}
