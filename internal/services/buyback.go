package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/curve"
	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/tracing"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
	"github.com/Luxor-Foundation/luxor-swap/internal/utils/poller"
)

// Buyback converts the native yield accrued since the last round into
// reward tokens through the external market maker and distributes them to
// stakers via the reward-token index. A round with no fresh yield returns
// ErrNoYieldAvailable and changes nothing; a failed swap aborts before any
// state is committed.
func (s *Service) Buyback(ctx context.Context) (result ledger.BuybackResult, err error) {
	err = s.runOperation("buyback", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		engine, err := ledger.NewBuybackEngine(params.FeeTreasuryRate)
		if err != nil {
			return err
		}

		accounting, err := s.loadAccounting(ctx)
		if err != nil {
			return err
		}

		balance, err := s.vault.Balance(ctx, s.cfg.Vault.NativeCustodyVault)
		if err != nil {
			return err
		}
		if err := accounting.ObserveNativeBalance(balance, time.Now()); err != nil {
			return err
		}

		pending, err := engine.PendingYield(accounting)
		if err != nil {
			return err
		}

		reserves, err := s.amm.Reserves(ctx)
		if err != nil {
			return err
		}
		swapQuote, err := curve.SwapBaseInput(
			pending, reserves.Native, reserves.RewardToken, s.cfg.Amm.TradeFeeRate,
		)
		if err != nil {
			return fmt.Errorf("failed to quote buyback swap: %w", err)
		}
		minimumOut, err := applySlippage(swapQuote.OutputAmount, s.cfg.Amm.SlippageRate)
		if err != nil {
			return err
		}

		amountOut, err := s.amm.Swap(ctx, pending, minimumOut)
		if err != nil {
			return err
		}

		// The swapped native has left custody; the balance observed above
		// shrinks by exactly the pending amount consumed.
		result, err = engine.Apply(accounting, pending, amountOut, balance-pending, time.Now())
		if err != nil {
			return err
		}

		// Swap output settles into the reward vault, carve the treasury fee out.
		if result.FeeToTreasury > 0 {
			if err := s.vault.Transfer(
				ctx, s.cfg.Vault.RewardVault, s.cfg.Vault.TreasuryVault, result.FeeToTreasury,
			); err != nil {
				return err
			}
		}

		if err := s.db.SaveGlobalAccounting(ctx, model.NewGlobalAccountingDocument(accounting)); err != nil {
			return fmt.Errorf("failed to commit buyback state: %w", err)
		}

		metrics.AddBuybackNativeUsed(result.NativeUsed)
		s.publishEvent(ctx, types.EventBuybackExecuted, &types.BuybackExecutedEvent{
			NativeUsed:     result.NativeUsed,
			RewardTokenOut: result.RewardTokenOut,
			FeeToTreasury:  result.FeeToTreasury,
			ToRewardVault:  result.ToRewardVault,
		})

		log.Ctx(ctx).Info().
			Uint64("native_used", result.NativeUsed).
			Uint64("reward_token_out", result.RewardTokenOut).
			Uint64("fee_to_treasury", result.FeeToTreasury).
			Msg("Buyback executed")
		return nil
	})
	return result, err
}

// applySlippage discounts a quoted output by the configured slippage rate to
// get the minimum acceptable execution.
func applySlippage(quoted, slippageRate uint64) (uint64, error) {
	keep := curve.FeeRateDenominator - slippageRate
	minimum := sdkmath.NewIntFromUint64(quoted).
		Mul(sdkmath.NewIntFromUint64(keep)).
		Quo(sdkmath.NewIntFromUint64(curve.FeeRateDenominator))
	if !minimum.IsUint64() {
		return 0, ledger.ErrArithmeticOverflow
	}
	return minimum.Uint64(), nil
}

// StartBuybackPoller launches the periodic buyback loop when enabled.
func (s *Service) StartBuybackPoller(ctx context.Context) {
	if !s.cfg.Poller.BuybackEnabled {
		log.Info().Msg("Buyback poller is disabled")
		return
	}

	pollBuyback := func(ctx context.Context) error {
		_, err := s.Buyback(ctx)
		if errors.Is(err, ledger.ErrNoYieldAvailable) {
			// Quiet rounds are the normal case.
			return nil
		}
		return err
	}

	s.buybackPoller = poller.NewPoller(
		s.cfg.Poller.BuybackPollingInterval,
		metrics.RecordPollerDuration("buyback", pollBuyback),
	)
	go s.buybackPoller.Start(tracing.InjectTraceID(ctx))
}

// StopBuybackPoller stops the periodic buyback loop if it is running.
func (s *Service) StopBuybackPoller() {
	if s.buybackPoller != nil {
		s.buybackPoller.Stop()
	}
}
