package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

// stakeAndYield seeds a staker and simulates native yield arriving in
// custody from the external delegation mechanism.
func stakeAndYield(t *testing.T, env *testEnv, staker string, stake, yield uint64) {
	t.Helper()

	env.vault.setBalance(staker, stake)
	_, err := env.service.Purchase(t.Context(), staker, stake)
	require.NoError(t, err)

	env.vault.setBalance(testCustodyVault, env.vault.balance(testCustodyVault)+yield)
}

func TestBuyback(t *testing.T) {
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		stakeAndYield(t, env, "staker", 100_000, 10_000)

		result, err := env.service.Buyback(ctx)
		require.NoError(t, err)

		assert.Equal(t, uint64(10_000), result.NativeUsed)
		assert.Positive(t, result.RewardTokenOut)
		// 25% treasury fee on the output side
		assert.Equal(t, result.RewardTokenOut/4, result.FeeToTreasury)
		assert.Equal(t, result.RewardTokenOut-result.FeeToTreasury, result.ToRewardVault)

		g := env.accounting(t)
		assert.Equal(t, uint64(10_000), g.TotalNativeRewardsAccrued)
		assert.Equal(t, uint64(10_000), g.TotalNativeUsedForBuyback)
		assert.False(t, g.RewardTokenIndex.IsZero())

		assert.Equal(t, result.FeeToTreasury, env.vault.balance(testTreasuryVault))
		assert.Contains(t, env.publisher.published(), types.EventBuybackExecuted)
	})
	t.Run("second round with no fresh yield", func(t *testing.T) {
		env := newTestEnv(t)
		stakeAndYield(t, env, "staker", 100_000, 10_000)

		_, err := env.service.Buyback(ctx)
		require.NoError(t, err)

		_, err = env.service.Buyback(ctx)
		assert.ErrorIs(t, err, ledger.ErrNoYieldAvailable)
	})
	t.Run("no stakers", func(t *testing.T) {
		env := newTestEnv(t)
		env.vault.setBalance(testCustodyVault, 10_000)

		_, err := env.service.Buyback(ctx)
		assert.ErrorIs(t, err, ledger.ErrNoYieldAvailable)
	})
	t.Run("failed swap leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t)
		stakeAndYield(t, env, "staker", 100_000, 10_000)
		env.amm.swapErr = ledger.ErrSwapFailed

		_, err := env.service.Buyback(ctx)
		assert.ErrorIs(t, err, ledger.ErrSwapFailed)

		g := env.accounting(t)
		assert.Zero(t, g.TotalNativeUsedForBuyback)
		assert.True(t, g.RewardTokenIndex.IsZero())

		// the yield stays available for the next round
		env.amm.swapErr = nil
		result, err := env.service.Buyback(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(10_000), result.NativeUsed)
	})
	t.Run("stakers can redeem the distributed output", func(t *testing.T) {
		env := newTestEnv(t)
		stakeAndYield(t, env, "staker", 100_000, 10_000)

		buyback, err := env.service.Buyback(ctx)
		require.NoError(t, err)

		redeemed, err := env.service.Redeem(ctx, "staker")
		require.NoError(t, err)
		assert.Equal(t, buyback.ToRewardVault, redeemed.Claimable)
	})
	t.Run("a staker joining after a round earns nothing from it", func(t *testing.T) {
		env := newTestEnv(t)
		stakeAndYield(t, env, "early", 100_000, 10_000)

		buyback, err := env.service.Buyback(ctx)
		require.NoError(t, err)

		// an equal stake arrives only after the round distributed
		stakeAndYield(t, env, "late", 100_000, 0)

		earlyRedeem, err := env.service.Redeem(ctx, "early")
		require.NoError(t, err)
		lateRedeem, err := env.service.Redeem(ctx, "late")
		require.NoError(t, err)

		assert.Equal(t, buyback.ToRewardVault, earlyRedeem.Claimable)
		assert.Zero(t, lateRedeem.Claimable)
		assert.Greater(t, earlyRedeem.Claimable, lateRedeem.Claimable)
	})
}
