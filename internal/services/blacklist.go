package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

// Blacklist forcibly removes a participant: their rewards are settled and
// marked forfeited, and their stake and pending balance are reassigned to
// the admin's position. Admin only; no funds move, only accounting.
func (s *Service) Blacklist(ctx context.Context, caller, user string) (result ledger.BlacklistResult, err error) {
	err = s.runOperation("blacklist", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(params, caller); err != nil {
			return err
		}
		if user == params.Admin {
			return fmt.Errorf("cannot blacklist admin %q: %w", user, ledger.ErrUnauthorized)
		}

		accounting, err := s.loadAccounting(ctx)
		if err != nil {
			return err
		}
		position, err := s.loadPosition(ctx, user)
		if err != nil {
			return err
		}
		adminPosition, err := s.loadPosition(ctx, params.Admin)
		if err != nil {
			return err
		}

		result, err = ledger.Blacklist(accounting, position, adminPosition, time.Now())
		if err != nil {
			return err
		}

		if err := s.db.CommitOperationState(
			ctx,
			model.NewGlobalAccountingDocument(accounting),
			model.NewPositionDocument(position),
			model.NewPositionDocument(adminPosition),
		); err != nil {
			return fmt.Errorf("failed to commit blacklist state: %w", err)
		}

		s.publishEvent(ctx, types.EventUserBlacklisted, &types.UserBlacklistedEvent{
			User:              user,
			StakeReassigned:   result.StakeReassigned,
			PendingReassigned: result.PendingReassigned,
		})

		log.Ctx(ctx).Warn().
			Str("user", user).
			Uint64("stake_reassigned", result.StakeReassigned).
			Uint64("pending_reassigned", result.PendingReassigned).
			Msg("User blacklisted")
		return nil
	})
	return result, err
}
