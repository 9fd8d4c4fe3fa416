package ledger

import (
	"errors"
	"fmt"
	"time"
)

// BuybackEngine converts accrued native yield into reward-token supply.
// The external swap happens between PendingYield and Apply; a failed swap
// means Apply is never invoked and no state moves.
type BuybackEngine struct {
	feeTreasuryRate uint64
}

func NewBuybackEngine(feeTreasuryRate uint64) (*BuybackEngine, error) {
	if feeTreasuryRate >= RateDenominator {
		return nil, errors.New("treasury fee rate must be below the rate denominator")
	}
	return &BuybackEngine{feeTreasuryRate: feeTreasuryRate}, nil
}

// PendingYield reports the native yield accrued but not yet used for a
// buyback. The caller must observe the current custody balance first so
// freshly arrived yield is counted. Repeated calls with no new yield fail
// with ErrNoYieldAvailable and change nothing; yield with no stakers has no
// claimants and is likewise not buyback-eligible.
func (e *BuybackEngine) PendingYield(g *GlobalAccounting) (uint64, error) {
	if g.TotalStaked == 0 {
		return 0, fmt.Errorf("nothing staked: %w", ErrNoYieldAvailable)
	}
	pending, err := subUint64(g.TotalNativeRewardsAccrued, g.TotalNativeUsedForBuyback)
	if err != nil {
		return 0, fmt.Errorf("buyback total exceeds accrued total: %w", err)
	}
	if pending == 0 {
		return 0, ErrNoYieldAvailable
	}
	return pending, nil
}

// BuybackResult reports how a completed buyback was split.
type BuybackResult struct {
	NativeUsed     uint64
	RewardTokenOut uint64
	FeeToTreasury  uint64
	ToRewardVault  uint64
}

// Apply commits a completed swap: splits the reward-token output between
// treasury fee and reward vault, accrues the reward-vault portion into the
// reward-token index against the current total stake, and advances the
// observed balance and audit totals. nativeBalanceAfter is the custody
// balance once the swapped native has left.
func (e *BuybackEngine) Apply(
	g *GlobalAccounting,
	nativeUsed, rewardTokenOut, nativeBalanceAfter uint64,
	now time.Time,
) (BuybackResult, error) {
	fee, err := mulDiv(rewardTokenOut, e.feeTreasuryRate, RateDenominator)
	if err != nil {
		return BuybackResult{}, err
	}
	toVault := rewardTokenOut - fee

	inc, err := AccrueIndex(toVault, g.TotalStaked)
	if err != nil {
		return BuybackResult{}, err
	}

	usedTotal, err := addUint64(g.TotalNativeUsedForBuyback, nativeUsed)
	if err != nil {
		return BuybackResult{}, fmt.Errorf("native used for buyback total: %w", err)
	}
	accruedTotal, err := addUint64(g.TotalRewardTokenAccrued, toVault)
	if err != nil {
		return BuybackResult{}, fmt.Errorf("reward token accrued total: %w", err)
	}

	g.RewardTokenIndex = g.RewardTokenIndex.Add(inc)
	g.TotalNativeUsedForBuyback = usedTotal
	g.TotalRewardTokenAccrued = accruedTotal
	g.LastObservedNativeBalance = nativeBalanceAfter
	g.LastUpdateTime = now
	g.LastBuybackTime = now

	return BuybackResult{
		NativeUsed:     nativeUsed,
		RewardTokenOut: rewardTokenOut,
		FeeToTreasury:  fee,
		ToRewardVault:  toVault,
	}, nil
}
