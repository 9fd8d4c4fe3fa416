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

// Purchase stakes nativeAmount for the purchaser and pays out reward tokens
// at the configured exchange rate, with the early-participant bonus while
// the stake-event count is below the cutoff. The native payment is pulled
// into custody and reward tokens leave the reward vault in the same
// operation.
func (s *Service) Purchase(
	ctx context.Context, purchaser string, nativeAmount uint64,
) (quote ledger.PurchaseQuote, err error) {
	err = s.runOperation("purchase", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if !params.PurchaseEnabled {
			return fmt.Errorf("purchase is disabled: %w", ledger.ErrOperationDisabled)
		}

		pricing, err := ledger.NewPricingEngine(pricingParamsOf(params))
		if err != nil {
			return err
		}

		accounting, err := s.loadAccounting(ctx)
		if err != nil {
			return err
		}
		position, err := s.loadPosition(ctx, purchaser)
		if err != nil {
			return err
		}

		quote, err = pricing.Price(nativeAmount, accounting.TotalStakeEvents)
		if err != nil {
			return err
		}

		balanceBefore, err := s.vault.Balance(ctx, s.cfg.Vault.NativeCustodyVault)
		if err != nil {
			return err
		}

		if err := accounting.Stake(nativeAmount, balanceBefore, time.Now()); err != nil {
			return err
		}
		if err := position.RecordPurchase(accounting, nativeAmount, quote.RewardAmount); err != nil {
			return err
		}

		// Move funds before committing state so a failed transfer leaves the
		// ledger untouched.
		if err := s.vault.Transfer(ctx, purchaser, s.cfg.Vault.NativeCustodyVault, nativeAmount); err != nil {
			return err
		}
		if err := s.vault.Transfer(ctx, s.cfg.Vault.RewardVault, purchaser, quote.RewardAmount); err != nil {
			return err
		}

		if err := s.db.CommitOperationState(
			ctx,
			model.NewGlobalAccountingDocument(accounting),
			model.NewPositionDocument(position),
		); err != nil {
			return fmt.Errorf("failed to commit purchase state: %w", err)
		}

		metrics.RecordTotalStaked(accounting.TotalStaked)
		s.publishEvent(ctx, types.EventPurchased, &types.PurchasedEvent{
			Purchaser:    purchaser,
			NativeAmount: quote.NativeAmount,
			RewardAmount: quote.RewardAmount,
			BonusApplied: quote.BonusApplied,
		})

		log.Ctx(ctx).Info().
			Str("purchaser", purchaser).
			Uint64("native_amount", quote.NativeAmount).
			Uint64("reward_amount", quote.RewardAmount).
			Bool("bonus_applied", quote.BonusApplied).
			Msg("Purchase completed")
		return nil
	})
	return quote, err
}

// ManualPurchase records an admin-verified purchase whose native payment was
// delivered outside the service. The reward amount is taken as given, only
// the reward-token payout and the stake accounting run here.
func (s *Service) ManualPurchase(
	ctx context.Context, caller, purchaser string, nativeAmount, rewardAmount uint64,
) error {
	return s.runOperation("manual_purchase", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(params, caller); err != nil {
			return err
		}
		if nativeAmount == 0 || rewardAmount == 0 {
			return fmt.Errorf("manual purchase amounts must be positive: %w", ledger.ErrAmountOutOfRange)
		}

		accounting, err := s.loadAccounting(ctx)
		if err != nil {
			return err
		}
		position, err := s.loadPosition(ctx, purchaser)
		if err != nil {
			return err
		}

		// The native payment already sits in custody; reconstruct the balance
		// as it was before it landed so the yield observation stays correct.
		balance, err := s.vault.Balance(ctx, s.cfg.Vault.NativeCustodyVault)
		if err != nil {
			return err
		}
		if balance < nativeAmount {
			return fmt.Errorf("custody balance %d below recorded payment %d: %w",
				balance, nativeAmount, ledger.ErrInsufficientFunds)
		}

		if err := accounting.Stake(nativeAmount, balance-nativeAmount, time.Now()); err != nil {
			return err
		}
		if err := position.RecordPurchase(accounting, nativeAmount, rewardAmount); err != nil {
			return err
		}

		if err := s.vault.Transfer(ctx, s.cfg.Vault.RewardVault, purchaser, rewardAmount); err != nil {
			return err
		}

		if err := s.db.CommitOperationState(
			ctx,
			model.NewGlobalAccountingDocument(accounting),
			model.NewPositionDocument(position),
		); err != nil {
			return fmt.Errorf("failed to commit manual purchase state: %w", err)
		}

		metrics.RecordTotalStaked(accounting.TotalStaked)
		s.publishEvent(ctx, types.EventManualPurchased, &types.ManualPurchasedEvent{
			Purchaser:    purchaser,
			NativeAmount: nativeAmount,
			RewardAmount: rewardAmount,
		})

		log.Ctx(ctx).Info().
			Str("purchaser", purchaser).
			Uint64("native_amount", nativeAmount).
			Uint64("reward_amount", rewardAmount).
			Msg("Manual purchase recorded")
		return nil
	})
}
