package ledger

import (
	"fmt"
	"time"
)

// RedemptionEngine settles pending reward-token yield and applies the
// holdings forfeiture rule.
type RedemptionEngine struct{}

func NewRedemptionEngine() *RedemptionEngine {
	return &RedemptionEngine{}
}

// RedemptionResult reports the payout split of a redemption.
type RedemptionResult struct {
	Claimable uint64
	Forfeited uint64
}

// Redeem settles the position against the current reward-token index, then
// compares currentHoldings — the owner's reward-token holdings as reported
// by the holdings oracle — against the recorded baseline. Holdings below
// the baseline forfeit a proportional share of the pending reward:
//
//	forfeited = pending * (base - current) / base
//
// The remainder is claimable; the baseline is re-established to the
// post-redemption holdings. A zero pending balance after settlement is a
// successful no-op so redemption is safely callable at any time.
func (e *RedemptionEngine) Redeem(
	g *GlobalAccounting,
	u *UserPosition,
	currentHoldings uint64,
	now time.Time,
) (RedemptionResult, error) {
	if err := u.Settle(g); err != nil {
		return RedemptionResult{}, err
	}
	pending := u.PendingRewardToken
	if pending == 0 {
		return RedemptionResult{}, nil
	}

	var forfeited uint64
	if currentHoldings < u.BaseHoldings {
		shortfall := u.BaseHoldings - currentHoldings
		f, err := mulDiv(pending, shortfall, u.BaseHoldings)
		if err != nil {
			return RedemptionResult{}, err
		}
		if f > pending {
			f = pending
		}
		forfeited = f
	}
	claimable := pending - forfeited

	claimedTotal, err := addUint64(u.TotalClaimed, claimable)
	if err != nil {
		return RedemptionResult{}, fmt.Errorf("position claimed total: %w", err)
	}
	forfeitedTotal, err := addUint64(u.TotalForfeited, forfeited)
	if err != nil {
		return RedemptionResult{}, fmt.Errorf("position forfeited total: %w", err)
	}
	gClaimed, err := addUint64(g.TotalRewardTokenClaimed, claimable)
	if err != nil {
		return RedemptionResult{}, fmt.Errorf("global claimed total: %w", err)
	}
	gForfeited, err := addUint64(g.TotalRewardTokenForfeited, forfeited)
	if err != nil {
		return RedemptionResult{}, fmt.Errorf("global forfeited total: %w", err)
	}
	base, err := addUint64(currentHoldings, claimable)
	if err != nil {
		return RedemptionResult{}, fmt.Errorf("base holdings: %w", err)
	}

	u.PendingRewardToken = 0
	u.TotalClaimed = claimedTotal
	u.TotalForfeited = forfeitedTotal
	u.BaseHoldings = base
	g.TotalRewardTokenClaimed = gClaimed
	g.TotalRewardTokenForfeited = gForfeited
	g.LastUpdateTime = now

	return RedemptionResult{Claimable: claimable, Forfeited: forfeited}, nil
}
