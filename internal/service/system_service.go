package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/domain"
	"github.com/studiosadmin/admin-console/internal/events"
	"github.com/studiosadmin/admin-console/internal/repository"
)

const systemStateResource = "System state"

// SystemService exposes the global maintenance switches.
type SystemService struct {
	states repository.SystemStateRepository
	events publisher
	logger *zap.Logger
}

// NewSystemService constructs the service.
func NewSystemService(states repository.SystemStateRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SystemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemService{states: states, events: newPublisher(dispatcher, logger), logger: logger}
}

// Crashed reports the global crash flag. A missing record means false.
func (s *SystemService) Crashed(ctx context.Context) (bool, error) {
	state, err := s.states.Get(ctx, domain.SystemKeyGlobalCrash)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(err, systemStateResource)
	}
	return state.Value, nil
}

// SetCrashed upserts the global crash flag.
func (s *SystemService) SetCrashed(ctx context.Context, crashed bool) (bool, error) {
	state, err := s.states.Upsert(ctx, domain.SystemKeyGlobalCrash, crashed)
	if err != nil {
		return false, storeError(err, systemStateResource)
	}
	s.logger.Info("global crash flag updated", zap.Bool("crashed", state.Value))
	s.events.publish(ctx, events.EventSystemCrashToggled, state.Key, events.SystemCrashToggledPayload{Crashed: state.Value})
	return state.Value, nil
}
