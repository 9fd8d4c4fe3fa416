package ledger

import (
	"fmt"
	"time"
)

// GlobalAccounting is the protocol-wide aggregate. It is owned exclusively
// by the caller for the duration of an operation; the ledger never assumes
// isolation itself.
type GlobalAccounting struct {
	TotalStaked               uint64
	TotalStakeEvents          uint64
	NativeRewardIndex         Index
	RewardTokenIndex          Index
	LastObservedNativeBalance uint64
	TotalNativeRewardsAccrued uint64
	TotalNativeUsedForBuyback uint64
	TotalRewardTokenAccrued   uint64
	TotalRewardTokenClaimed   uint64
	TotalRewardTokenForfeited uint64
	LastUpdateTime            time.Time
	LastBuybackTime           time.Time
}

// UserPosition is the per-participant stake record. Positions are created on
// first purchase and never destroyed; an inactive position simply carries
// zero pending state.
type UserPosition struct {
	Owner                 string
	StakedAmount          uint64
	RewardTokenCheckpoint Index
	PendingRewardToken    uint64
	BaseHoldings          uint64
	TotalClaimed          uint64
	TotalForfeited        uint64
}

func NewUserPosition(owner string) *UserPosition {
	return &UserPosition{Owner: owner}
}

// ObserveNativeBalance credits native yield that arrived since the last
// accounting pass to everyone currently staked. Native rewards arrive via
// the external delegation mechanism, so they are only visible as a balance
// delta. Must run before any change to TotalStaked: yield observed here was
// earned by the stake that existed while it accrued.
//
// With nothing staked the balance is tracked but no index accrues — the
// yield has no claimants.
func (g *GlobalAccounting) ObserveNativeBalance(current uint64, now time.Time) error {
	if current <= g.LastObservedNativeBalance {
		return nil
	}
	delta := current - g.LastObservedNativeBalance
	if g.TotalStaked > 0 {
		inc, err := AccrueIndex(delta, g.TotalStaked)
		if err != nil {
			return err
		}
		g.NativeRewardIndex = g.NativeRewardIndex.Add(inc)
		accrued, err := addUint64(g.TotalNativeRewardsAccrued, delta)
		if err != nil {
			return fmt.Errorf("native rewards accrued total: %w", err)
		}
		g.TotalNativeRewardsAccrued = accrued
	}
	g.LastObservedNativeBalance = current
	g.LastUpdateTime = now
	return nil
}

// Stake admits a new stake of the given size. The index accrual and the
// stake-size mutation are deliberately one function: yield observed up to
// nativeBalanceBefore is credited to the pre-existing stake, and the new
// stake starts from the post-update index with zero retroactive
// entitlement.
//
// nativeBalanceBefore is the custody balance before the purchaser's native
// transfer lands; after this call the observed balance reflects the
// transfer as well.
func (g *GlobalAccounting) Stake(amount, nativeBalanceBefore uint64, now time.Time) error {
	if err := g.ObserveNativeBalance(nativeBalanceBefore, now); err != nil {
		return err
	}
	total, err := addUint64(g.TotalStaked, amount)
	if err != nil {
		return fmt.Errorf("total staked: %w", err)
	}
	observed, err := addUint64(nativeBalanceBefore, amount)
	if err != nil {
		return fmt.Errorf("observed native balance: %w", err)
	}
	g.TotalStaked = total
	g.TotalStakeEvents++
	g.LastObservedNativeBalance = observed
	g.LastUpdateTime = now
	return nil
}

// Unstake removes stake from the aggregate, for the privileged
// staked-native withdrawal path. The caller settles and shrinks the
// affected position in the same operation so the sum invariant holds.
func (g *GlobalAccounting) Unstake(amount uint64, now time.Time) error {
	total, err := subUint64(g.TotalStaked, amount)
	if err != nil {
		return fmt.Errorf("total staked underflow: %w", err)
	}
	observed, err := subUint64(g.LastObservedNativeBalance, amount)
	if err != nil {
		return fmt.Errorf("observed native balance underflow: %w", err)
	}
	g.TotalStaked = total
	g.LastObservedNativeBalance = observed
	g.LastUpdateTime = now
	return nil
}

// Settle folds reward-token yield earned since the position's last
// checkpoint into its pending balance and advances the checkpoint.
// Idempotent when the global index has not moved, and commutative with
// further accrual.
func (u *UserPosition) Settle(g *GlobalAccounting) error {
	delta, err := g.RewardTokenIndex.Delta(u.RewardTokenCheckpoint)
	if err != nil {
		return err
	}
	owed, err := Owed(u.StakedAmount, delta)
	if err != nil {
		return err
	}
	pending, err := addUint64(u.PendingRewardToken, owed)
	if err != nil {
		return fmt.Errorf("pending reward token: %w", err)
	}
	u.PendingRewardToken = pending
	u.RewardTokenCheckpoint = g.RewardTokenIndex
	return nil
}

// RecordPurchase credits a priced purchase to the position. The reward
// stream is settled against the current index first so the added stake
// earns nothing retroactively, then the forfeiture baseline is raised by
// the freshly purchased reward tokens.
func (u *UserPosition) RecordPurchase(g *GlobalAccounting, nativeAmount, rewardAmount uint64) error {
	if err := u.Settle(g); err != nil {
		return err
	}
	staked, err := addUint64(u.StakedAmount, nativeAmount)
	if err != nil {
		return fmt.Errorf("staked amount: %w", err)
	}
	base, err := addUint64(u.BaseHoldings, rewardAmount)
	if err != nil {
		return fmt.Errorf("base holdings: %w", err)
	}
	u.StakedAmount = staked
	u.BaseHoldings = base
	return nil
}
