package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Luxor-Foundation/luxor-swap/internal/db"
	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

func (s *Service) requireAdmin(params types.ProtocolParams, caller string) error {
	if caller == "" || caller != params.Admin {
		return fmt.Errorf("caller %q is not the protocol admin: %w", caller, ledger.ErrUnauthorized)
	}
	return nil
}

// InitializeProtocol seeds the protocol parameters and the zeroed global
// accounting from the genesis config. It can only run once.
func (s *Service) InitializeProtocol(ctx context.Context) error {
	return s.runOperation("initialize", func() error {
		protocol := s.cfg.Protocol
		params := types.ProtocolParams{
			Admin:                   protocol.Admin,
			ExchangeRateNative:      protocol.ExchangeRateNative,
			ExchangeRateReward:      protocol.ExchangeRateReward,
			BonusRate:               protocol.BonusRate,
			MaxStakeCountToGetBonus: protocol.MaxStakeCountToGetBonus,
			MinSwapAmount:           protocol.MinSwapAmount,
			MaxSwapAmount:           protocol.MaxSwapAmount,
			FeeTreasuryRate:         protocol.FeeTreasuryRate,
			PurchaseEnabled:         protocol.PurchaseEnabled,
			RedeemEnabled:           protocol.RedeemEnabled,
		}

		if err := s.db.InitProtocolParams(ctx, model.NewProtocolParamsDocument(params)); err != nil {
			if db.IsDuplicateKeyError(err) {
				return fmt.Errorf("protocol params exist: %w", ledger.ErrAlreadyInitialized)
			}
			return fmt.Errorf("failed to init protocol params: %w", err)
		}

		// Anchor the balance observation so pre-existing custody funds are
		// not misread as yield on the first accounting pass.
		balance, err := s.vault.Balance(ctx, s.cfg.Vault.NativeCustodyVault)
		if err != nil {
			return err
		}
		accounting := &ledger.GlobalAccounting{
			LastObservedNativeBalance: balance,
			LastUpdateTime:            time.Now(),
		}
		if err := s.db.InitGlobalAccounting(ctx, model.NewGlobalAccountingDocument(accounting)); err != nil {
			if db.IsDuplicateKeyError(err) {
				return fmt.Errorf("global accounting exists: %w", ledger.ErrAlreadyInitialized)
			}
			return fmt.Errorf("failed to init global accounting: %w", err)
		}

		s.publishEvent(ctx, types.EventInitialized, &types.InitializedEvent{
			Admin:                   params.Admin,
			BonusRate:               params.BonusRate,
			MaxStakeCountToGetBonus: params.MaxStakeCountToGetBonus,
			MinSwapAmount:           params.MinSwapAmount,
			MaxSwapAmount:           params.MaxSwapAmount,
			FeeTreasuryRate:         params.FeeTreasuryRate,
			PurchaseEnabled:         params.PurchaseEnabled,
			RedeemEnabled:           params.RedeemEnabled,
		})

		log.Ctx(ctx).Info().Str("admin", params.Admin).Msg("Protocol initialized")
		return nil
	})
}

// UpdateConfig applies a partial parameter update. Only the current admin
// may call it; the resulting parameter set must still validate.
func (s *Service) UpdateConfig(ctx context.Context, caller string, update types.ProtocolParamsUpdate) error {
	return s.runOperation("update_config", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(params, caller); err != nil {
			return err
		}

		updated := update.Apply(params)
		if updated.Admin == "" {
			return fmt.Errorf("admin cannot be cleared: %w", ledger.ErrAmountOutOfRange)
		}
		if updated.FeeTreasuryRate >= ledger.RateDenominator {
			return fmt.Errorf("fee treasury rate %d out of range: %w",
				updated.FeeTreasuryRate, ledger.ErrAmountOutOfRange)
		}
		if updated.MinSwapAmount > updated.MaxSwapAmount {
			return fmt.Errorf("min swap amount %d above max %d: %w",
				updated.MinSwapAmount, updated.MaxSwapAmount, ledger.ErrAmountOutOfRange)
		}

		if err := s.db.SaveProtocolParams(ctx, model.NewProtocolParamsDocument(updated)); err != nil {
			return fmt.Errorf("failed to save protocol params: %w", err)
		}

		s.publishEvent(ctx, types.EventConfigUpdated, &types.ConfigUpdatedEvent{
			Admin:           updated.Admin,
			MinSwapAmount:   updated.MinSwapAmount,
			MaxSwapAmount:   updated.MaxSwapAmount,
			FeeTreasuryRate: updated.FeeTreasuryRate,
			PurchaseEnabled: updated.PurchaseEnabled,
			RedeemEnabled:   updated.RedeemEnabled,
		})

		log.Ctx(ctx).Info().Str("admin", updated.Admin).Msg("Protocol config updated")
		return nil
	})
}

// EmergencyWithdraw executes one of the privileged escape-hatch variants.
func (s *Service) EmergencyWithdraw(ctx context.Context, caller string, withdrawal types.EmergencyWithdrawal) error {
	return s.runOperation("emergency_withdraw", func() error {
		params, err := s.loadParams(ctx)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(params, caller); err != nil {
			return err
		}

		switch w := withdrawal.(type) {
		case types.WithdrawRewardAssets:
			return s.withdrawRewardAssets(ctx, w)
		case types.WithdrawNativeFees:
			return s.withdrawNativeFees(ctx, w)
		case types.DeactivateStake:
			return s.deactivateStake(ctx, params)
		case types.WithdrawStakedNative:
			return s.withdrawStakedNative(ctx, w)
		default:
			return fmt.Errorf("unknown withdrawal variant %T", withdrawal)
		}
	})
}

func (s *Service) withdrawRewardAssets(ctx context.Context, w types.WithdrawRewardAssets) error {
	if err := s.vault.Transfer(ctx, s.cfg.Vault.RewardVault, w.To, w.Amount); err != nil {
		return err
	}
	log.Ctx(ctx).Warn().
		Str("to", w.To).
		Uint64("amount", w.Amount).
		Msg("Emergency withdrawal of reward assets")
	return nil
}

// withdrawNativeFees moves accrued native yield out of custody. The amount
// is capped at the yield not yet consumed by buybacks so staked principal
// never leaves through this path; withdrawn yield is accounted as used so a
// later buyback cannot spend it again.
func (s *Service) withdrawNativeFees(ctx context.Context, w types.WithdrawNativeFees) error {
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

	pending := accounting.TotalNativeRewardsAccrued - accounting.TotalNativeUsedForBuyback
	if w.Amount == 0 || w.Amount > pending {
		return fmt.Errorf("native fee withdrawal %d exceeds available yield %d: %w",
			w.Amount, pending, ledger.ErrInsufficientFunds)
	}

	if err := s.vault.Transfer(ctx, s.cfg.Vault.NativeCustodyVault, w.To, w.Amount); err != nil {
		return err
	}

	accounting.TotalNativeUsedForBuyback += w.Amount
	accounting.LastObservedNativeBalance -= w.Amount
	accounting.LastUpdateTime = time.Now()

	if err := s.db.SaveGlobalAccounting(ctx, model.NewGlobalAccountingDocument(accounting)); err != nil {
		return fmt.Errorf("failed to commit native fee withdrawal: %w", err)
	}

	log.Ctx(ctx).Warn().
		Str("to", w.To).
		Uint64("amount", w.Amount).
		Msg("Emergency withdrawal of native fees")
	return nil
}

func (s *Service) deactivateStake(ctx context.Context, params types.ProtocolParams) error {
	params.PurchaseEnabled = false
	params.RedeemEnabled = false
	if err := s.db.SaveProtocolParams(ctx, model.NewProtocolParamsDocument(params)); err != nil {
		return fmt.Errorf("failed to deactivate stake: %w", err)
	}

	log.Ctx(ctx).Warn().Msg("Purchasing and redemption deactivated")
	return nil
}

// withdrawStakedNative returns staked principal to its owner. The position
// is settled first so rewards earned up to this point survive the shrink.
func (s *Service) withdrawStakedNative(ctx context.Context, w types.WithdrawStakedNative) error {
	accounting, err := s.loadAccounting(ctx)
	if err != nil {
		return err
	}
	position, err := s.loadPosition(ctx, w.Owner)
	if err != nil {
		return err
	}
	if w.Amount == 0 || w.Amount > position.StakedAmount {
		return fmt.Errorf("withdrawal %d exceeds staked %d for %s: %w",
			w.Amount, position.StakedAmount, w.Owner, ledger.ErrInsufficientFunds)
	}

	balance, err := s.vault.Balance(ctx, s.cfg.Vault.NativeCustodyVault)
	if err != nil {
		return err
	}
	if err := accounting.ObserveNativeBalance(balance, time.Now()); err != nil {
		return err
	}
	if err := position.Settle(accounting); err != nil {
		return err
	}
	if err := accounting.Unstake(w.Amount, time.Now()); err != nil {
		return err
	}
	position.StakedAmount -= w.Amount

	if err := s.vault.Transfer(ctx, s.cfg.Vault.NativeCustodyVault, w.Owner, w.Amount); err != nil {
		return err
	}

	if err := s.db.CommitOperationState(
		ctx,
		model.NewGlobalAccountingDocument(accounting),
		model.NewPositionDocument(position),
	); err != nil {
		return fmt.Errorf("failed to commit staked withdrawal: %w", err)
	}

	log.Ctx(ctx).Warn().
		Str("owner", w.Owner).
		Uint64("amount", w.Amount).
		Msg("Emergency withdrawal of staked native")
	return nil
}
