package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
	"github.com/Luxor-Foundation/luxor-swap/internal/types"
)

func TestPurchase(t *testing.T) {
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		purchaser := gofakeit.Username()
		env.vault.setBalance(purchaser, 10_000)

		quote, err := env.service.Purchase(ctx, purchaser, 10_000)
		require.NoError(t, err)

		// 10000 * 900 / 1000 plus the 10% early bonus
		assert.Equal(t, uint64(9900), quote.RewardAmount)
		assert.True(t, quote.BonusApplied)

		g := env.accounting(t)
		assert.Equal(t, uint64(10_000), g.TotalStaked)
		assert.Equal(t, uint64(1), g.TotalStakeEvents)

		u := env.position(t, purchaser)
		assert.Equal(t, uint64(10_000), u.StakedAmount)
		assert.Equal(t, uint64(9900), u.BaseHoldings)

		// native moved into custody, reward tokens out of the reward vault
		assert.Equal(t, uint64(10_000), env.vault.balance(testCustodyVault))
		assert.Equal(t, uint64(9900), env.vault.balance(purchaser))

		assert.Contains(t, env.publisher.published(), types.EventPurchased)
	})
	t.Run("bonus stops after the cutoff", func(t *testing.T) {
		env := newTestEnv(t)

		for i := 0; i < 6; i++ {
			purchaser := gofakeit.Username()
			env.vault.setBalance(purchaser, 1000)
			quote, err := env.service.Purchase(ctx, purchaser, 1000)
			require.NoError(t, err)

			// the fifth purchase still gets the bonus, the sixth does not
			assert.Equal(t, i < 5, quote.BonusApplied, "purchase %d", i+1)
		}
	})
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t)
		disabled := false
		err := env.service.UpdateConfig(ctx, testAdmin, types.ProtocolParamsUpdate{
			PurchaseEnabled: &disabled,
		})
		require.NoError(t, err)

		_, err = env.service.Purchase(ctx, "anyone", 1000)
		assert.ErrorIs(t, err, ledger.ErrOperationDisabled)
	})
	t.Run("out of range leaves state untouched", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.Purchase(ctx, "whale", 2_000_000)
		assert.ErrorIs(t, err, ledger.ErrAmountOutOfRange)

		g := env.accounting(t)
		assert.Zero(t, g.TotalStaked)
		assert.Zero(t, g.TotalStakeEvents)
		assert.Empty(t, env.publisher.published()[1:]) // only the init event
	})
	t.Run("unfunded purchaser aborts before commit", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.Purchase(ctx, "broke", 1000)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

		g := env.accounting(t)
		assert.Zero(t, g.TotalStaked)
	})
}

func TestManualPurchase(t *testing.T) {
	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		purchaser := gofakeit.Username()
		// the native payment already arrived out of band
		env.vault.setBalance(testCustodyVault, 5000)

		err := env.service.ManualPurchase(ctx, testAdmin, purchaser, 5000, 4500)
		require.NoError(t, err)

		g := env.accounting(t)
		assert.Equal(t, uint64(5000), g.TotalStaked)
		assert.Equal(t, uint64(5000), g.LastObservedNativeBalance)

		u := env.position(t, purchaser)
		assert.Equal(t, uint64(4500), u.BaseHoldings)
		assert.Equal(t, uint64(4500), env.vault.balance(purchaser))

		assert.Contains(t, env.publisher.published(), types.EventManualPurchased)
	})
	t.Run("non admin", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.service.ManualPurchase(ctx, "impostor", "buyer", 1000, 900)
		assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	})
	t.Run("payment never arrived", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.service.ManualPurchase(ctx, testAdmin, "buyer", 1000, 900)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})
}

// TestTotalStakedConsistency drives a mixed multi-user sequence and checks
// that the global total always equals the sum over individual positions.
func TestTotalStakedConsistency(t *testing.T) {
	ctx := t.Context()
	env := newTestEnv(t)

	stakedSum := func() uint64 {
		var sum uint64
		for _, doc := range env.db.positions {
			sum += doc.StakedAmount
		}
		return sum
	}
	checkConsistent := func(t *testing.T) {
		t.Helper()
		g := env.accounting(t)
		require.Equal(t, stakedSum(), g.TotalStaked)
	}

	stakers := []struct {
		owner  string
		amount uint64
	}{
		{"alice", 10_000},
		{"bob", 2500},
		{"carol", 70_000},
	}
	for _, s := range stakers {
		env.vault.setBalance(s.owner, s.amount)
		_, err := env.service.Purchase(ctx, s.owner, s.amount)
		require.NoError(t, err)
		checkConsistent(t)
	}

	// the manual payment lands in custody out of band first
	env.vault.setBalance(testCustodyVault, env.vault.balance(testCustodyVault)+5000)
	err := env.service.ManualPurchase(ctx, testAdmin, "dave", 5000, 4500)
	require.NoError(t, err)
	checkConsistent(t)

	err = env.service.EmergencyWithdraw(ctx, testAdmin, types.WithdrawStakedNative{
		Owner:  "bob",
		Amount: 2500,
	})
	require.NoError(t, err)
	checkConsistent(t)

	_, err = env.service.Blacklist(ctx, testAdmin, "carol")
	require.NoError(t, err)
	checkConsistent(t)
}
