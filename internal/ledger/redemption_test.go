package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settledPosition builds a position with a pending balance already settled
// against the given global state.
func settledPosition(t *testing.T, g *GlobalAccounting, pending, baseHoldings uint64) *UserPosition {
	t.Helper()

	u := NewUserPosition("collector")
	u.PendingRewardToken = pending
	u.BaseHoldings = baseHoldings
	u.RewardTokenCheckpoint = g.RewardTokenIndex
	return u
}

func TestRedeem(t *testing.T) {
	engine := NewRedemptionEngine()
	now := time.Now()

	t.Run("full holdings pay out everything", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 500, 1000)

		result, err := engine.Redeem(g, u, 1000, now)
		require.NoError(t, err)

		assert.Equal(t, uint64(500), result.Claimable)
		assert.Zero(t, result.Forfeited)
		assert.Zero(t, u.PendingRewardToken)
		assert.Equal(t, uint64(500), u.TotalClaimed)
		// baseline resets to holdings plus the fresh payout
		assert.Equal(t, uint64(1500), u.BaseHoldings)
	})
	t.Run("shortfall forfeits pro rata", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 500, 1000)

		// holdings dropped from 1000 to 800, a 20% shortfall
		result, err := engine.Redeem(g, u, 800, now)
		require.NoError(t, err)

		assert.Equal(t, uint64(100), result.Forfeited)
		assert.Equal(t, uint64(400), result.Claimable)
		assert.Equal(t, uint64(400), u.TotalClaimed)
		assert.Equal(t, uint64(100), u.TotalForfeited)
		assert.Equal(t, uint64(1200), u.BaseHoldings)
		assert.Equal(t, uint64(400), g.TotalRewardTokenClaimed)
		assert.Equal(t, uint64(100), g.TotalRewardTokenForfeited)
	})
	t.Run("zero holdings forfeit everything", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 500, 1000)

		result, err := engine.Redeem(g, u, 0, now)
		require.NoError(t, err)

		assert.Zero(t, result.Claimable)
		assert.Equal(t, uint64(500), result.Forfeited)
		assert.Zero(t, u.BaseHoldings)
	})
	t.Run("nothing pending is a no-op", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 0, 1000)

		result, err := engine.Redeem(g, u, 500, now)
		require.NoError(t, err)

		assert.Zero(t, result.Claimable)
		assert.Zero(t, result.Forfeited)
		// the baseline is untouched when nothing was redeemed
		assert.Equal(t, uint64(1000), u.BaseHoldings)
	})
	t.Run("double redeem pays nothing twice", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 500, 1000)

		first, err := engine.Redeem(g, u, 1000, now)
		require.NoError(t, err)
		require.Equal(t, uint64(500), first.Claimable)

		second, err := engine.Redeem(g, u, 1500, now)
		require.NoError(t, err)
		assert.Zero(t, second.Claimable)
		assert.Zero(t, second.Forfeited)
	})
	t.Run("settles unharvested yield before paying", func(t *testing.T) {
		g := &GlobalAccounting{TotalStaked: 1000}
		inc, err := AccrueIndex(100, g.TotalStaked)
		require.NoError(t, err)
		g.RewardTokenIndex = g.RewardTokenIndex.Add(inc)

		u := NewUserPosition("collector")
		u.StakedAmount = 1000
		u.BaseHoldings = 1000

		result, err := engine.Redeem(g, u, 1000, now)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), result.Claimable)
	})
	t.Run("increased holdings never forfeit", func(t *testing.T) {
		g := &GlobalAccounting{}
		u := settledPosition(t, g, 500, 1000)

		result, err := engine.Redeem(g, u, 5000, now)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), result.Claimable)
		assert.Zero(t, result.Forfeited)
		assert.Equal(t, uint64(5500), u.BaseHoldings)
	})
}
