package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

// Redeem settles and pays out the collector's pending reward tokens. If the
// collector's current holdings dropped below the recorded baseline, a
// pro-rata share of the pending balance is forfeited instead of paid.
// Redeeming with nothing pending is a successful no-op.
func (s *Service) Redeem(ctx context.Context, collector string) (result ledger.RedemptionResult, err error) {
	err = s.runOperation("redeem", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if !params.RedeemEnabled {
			return fmt.Errorf("redemption is disabled: %w", ledger.ErrOperationDisabled)
		}

		accounting, err := s.loadAccounting(ctx)
		if err != nil {
			return err
		}
		position, err := s.loadPosition(ctx, collector)
		if err != nil {
			return err
		}

		holdings, err := s.holdings.Holdings(ctx, collector)
		if err != nil {
			return err
		}

		result, err = s.redemption.Redeem(accounting, position, holdings, time.Now())
		if err != nil {
			return err
		}

		if result.Claimable > 0 {
			if err := s.vault.Transfer(ctx, s.cfg.Vault.RewardVault, collector, result.Claimable); err != nil {
				return err
			}
		}
		// Forfeited rewards leave the reward vault too, to the treasury, so
		// the vault balance tracks outstanding entitlements.
		if result.Forfeited > 0 {
			if err := s.vault.Transfer(ctx, s.cfg.Vault.RewardVault, s.cfg.Vault.TreasuryVault, result.Forfeited); err != nil {
				return err
			}
		}

		if err := s.db.CommitOperationState(
			ctx,
			model.NewGlobalAccountingDocument(accounting),
			model.NewPositionDocument(position),
		); err != nil {
			return fmt.Errorf("failed to commit redemption state: %w", err)
		}

		metrics.AddRewardsClaimed(result.Claimable)
		metrics.AddRewardsForfeited(result.Forfeited)
		s.publishEvent(ctx, types.EventRewardsCollected, &types.RewardsCollectedEvent{
			Collector: collector,
			Claimed:   result.Claimable,
			Forfeited: result.Forfeited,
		})

		log.Ctx(ctx).Info().
			Str("collector", collector).
			Uint64("claimed", result.Claimable).
			Uint64("forfeited", result.Forfeited).
			Msg("Rewards collected")
		return nil
	})
	return result, err
}
