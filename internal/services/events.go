package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

// publishEvent pushes a protocol event to the queue. Publishing is
// best-effort: the ledger state is already committed, so a sink outage must
// not fail the operation.
func (s *Service) publishEvent(ctx context.Context, eventType types.EventType, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_type", eventType.String()).
			Msg("Failed to publish event")
	}
}
