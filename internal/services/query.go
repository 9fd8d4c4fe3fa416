package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Luxor-Foundation/luxor-swap/internal/curve"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

// ProtocolStats is a read-only snapshot of the global accounting for the
// stats endpoint.
type ProtocolStats struct {
	TotalStaked               uint64 `json:"total_staked"`
	TotalStakeEvents          uint64 `json:"total_stake_events"`
	NativeRewardIndex         string `json:"native_reward_index"`
	RewardTokenIndex          string `json:"reward_token_index"`
	TotalNativeRewardsAccrued uint64 `json:"total_native_rewards_accrued"`
	TotalNativeUsedForBuyback uint64 `json:"total_native_used_for_buyback"`
	TotalRewardTokenAccrued   uint64 `json:"total_reward_token_accrued"`
	TotalRewardTokenClaimed   uint64 `json:"total_reward_token_claimed"`
	TotalRewardTokenForfeited uint64 `json:"total_reward_token_forfeited"`
}

// Stats returns the current global accounting snapshot.
func (s *Service) Stats(ctx context.Context) (*ProtocolStats, error) {
	accounting, err := s.loadAccounting(ctx)
	if err != nil {
		return nil, err
	}
	return &ProtocolStats{
		TotalStaked:               accounting.TotalStaked,
		TotalStakeEvents:          accounting.TotalStakeEvents,
		NativeRewardIndex:         accounting.NativeRewardIndex.String(),
		RewardTokenIndex:          accounting.RewardTokenIndex.String(),
		TotalNativeRewardsAccrued: accounting.TotalNativeRewardsAccrued,
		TotalNativeUsedForBuyback: accounting.TotalNativeUsedForBuyback,
		TotalRewardTokenAccrued:   accounting.TotalRewardTokenAccrued,
		TotalRewardTokenClaimed:   accounting.TotalRewardTokenClaimed,
		TotalRewardTokenForfeited: accounting.TotalRewardTokenForfeited,
	}, nil
}

// PositionView reports a position with rewards settled against the live
// index, without mutating stored state.
type PositionView struct {
	Owner              string `json:"owner"`
	StakedAmount       uint64 `json:"staked_amount"`
	PendingRewardToken uint64 `json:"pending_reward_token"`
	BaseHoldings       uint64 `json:"base_holdings"`
	TotalClaimed       uint64 `json:"total_claimed"`
	TotalForfeited     uint64 `json:"total_forfeited"`
}

// Position returns the owner's position with pending rewards computed
// against the current reward-token index.
func (s *Service) Position(ctx context.Context, owner string) (*PositionView, error) {
	accounting, err := s.loadAccounting(ctx)
	if err != nil {
		return nil, err
	}
	position, err := s.loadPosition(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Settle the in-memory copy only so the view includes unharvested yield.
	if err := position.Settle(accounting); err != nil {
		return nil, err
	}

	return &PositionView{
		Owner:              position.Owner,
		StakedAmount:       position.StakedAmount,
		PendingRewardToken: position.PendingRewardToken,
		BaseHoldings:       position.BaseHoldings,
		TotalClaimed:       position.TotalClaimed,
		TotalForfeited:     position.TotalForfeited,
	}, nil
}

// SwapQuoteView prices an exact-output trade against the live pool.
type SwapQuoteView struct {
	RewardTokenOut uint64 `json:"reward_token_out"`
	NativeRequired uint64 `json:"native_required"`
	TradeFee       uint64 `json:"trade_fee"`
}

// QuoteExactOutput reports how much native the pool would charge right now
// for a given reward-token amount, trade fee included. The quote is
// informational, nothing is swapped.
func (s *Service) QuoteExactOutput(ctx context.Context, rewardTokenOut uint64) (*SwapQuoteView, error) {
	reserves, err := s.amm.Reserves(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := curve.SwapBaseOutput(
		rewardTokenOut, reserves.Native, reserves.RewardToken, s.cfg.Amm.TradeFeeRate,
	)
	switch {
	case errors.Is(err, curve.ErrZeroTradingTokens):
		return nil, fmt.Errorf("requested output %d not quotable against reserve %d: %w",
			rewardTokenOut, reserves.RewardToken, ledger.ErrAmountOutOfRange)
	case errors.Is(err, curve.ErrEmptyReserves):
		return nil, fmt.Errorf("%w: pool has no liquidity", ledger.ErrSwapFailed)
	case err != nil:
		return nil, fmt.Errorf("failed to quote exact-output swap: %w", err)
	}

	return &SwapQuoteView{
		RewardTokenOut: quote.OutputAmount,
		NativeRequired: quote.InputAmount,
		TradeFee:       quote.TradeFee,
	}, nil
}
