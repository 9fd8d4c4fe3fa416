package ledger

import (
	"fmt"
	"time"
)

// BlacklistResult reports what a forced removal moved.
type BlacklistResult struct {
	StakeReassigned   uint64
	PendingReassigned uint64
}

// Blacklist forcibly removes a participant from the protocol. The position
// is settled up to the current reward-token index, the settled pending
// balance is recorded as forfeited by the owner, and both the stake and the
// pending balance are reassigned to the admin position. TotalStaked does not
// change, the stake merely changes hands; the forfeiture baseline is cleared
// since the owner no longer holds an entitlement.
//
// The reassigned pending stays claimable (by the admin), so the global
// claimed/forfeited totals that track reward-vault outflows are untouched.
func Blacklist(g *GlobalAccounting, u, admin *UserPosition, now time.Time) (BlacklistResult, error) {
	if u.Owner == admin.Owner {
		return BlacklistResult{}, fmt.Errorf("cannot blacklist the admin position: %w", ErrUnauthorized)
	}
	if err := u.Settle(g); err != nil {
		return BlacklistResult{}, err
	}
	if err := admin.Settle(g); err != nil {
		return BlacklistResult{}, err
	}

	pending := u.PendingRewardToken
	stake := u.StakedAmount

	forfeitedTotal, err := addUint64(u.TotalForfeited, pending)
	if err != nil {
		return BlacklistResult{}, fmt.Errorf("position forfeited total: %w", err)
	}
	adminPending, err := addUint64(admin.PendingRewardToken, pending)
	if err != nil {
		return BlacklistResult{}, fmt.Errorf("admin pending reward token: %w", err)
	}
	adminStaked, err := addUint64(admin.StakedAmount, stake)
	if err != nil {
		return BlacklistResult{}, fmt.Errorf("admin staked amount: %w", err)
	}

	u.TotalForfeited = forfeitedTotal
	u.StakedAmount = 0
	u.PendingRewardToken = 0
	u.BaseHoldings = 0
	admin.PendingRewardToken = adminPending
	admin.StakedAmount = adminStaked
	g.LastUpdateTime = now

	return BlacklistResult{StakeReassigned: stake, PendingReassigned: pending}, nil
}
