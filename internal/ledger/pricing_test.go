package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricingParams() PricingParams {
	return PricingParams{
		ExchangeRateNative:      1000,
		ExchangeRateReward:      900,
		BonusRate:               100_000, // 10%
		MaxStakeCountToGetBonus: 5,
		MinSwapAmount:           1,
		MaxSwapAmount:           1_000_000,
	}
}

func TestNewPricingEngine(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		_, err := NewPricingEngine(testPricingParams())
		require.NoError(t, err)
	})
	t.Run("invalid params", func(t *testing.T) {
		params := testPricingParams()
		params.ExchangeRateNative = 0
		_, err := NewPricingEngine(params)
		assert.Error(t, err)
	})
}

func TestPrice(t *testing.T) {
	engine, err := NewPricingEngine(testPricingParams())
	require.NoError(t, err)

	t.Run("exchange rate without bonus", func(t *testing.T) {
		quote, err := engine.Price(10_000, 5)
		require.NoError(t, err)

		assert.Equal(t, uint64(9000), quote.RewardAmount)
		assert.False(t, quote.BonusApplied)
	})
	t.Run("bonus applies below the cutoff", func(t *testing.T) {
		// the fifth purchase sees 4 prior stake events and still gets the bonus
		quote, err := engine.Price(10_000, 4)
		require.NoError(t, err)

		assert.Equal(t, uint64(9900), quote.RewardAmount)
		assert.True(t, quote.BonusApplied)
	})
	t.Run("bonus stops exactly at the cutoff", func(t *testing.T) {
		withBonus, err := engine.Price(10_000, 4)
		require.NoError(t, err)
		withoutBonus, err := engine.Price(10_000, 5)
		require.NoError(t, err)

		assert.True(t, withBonus.BonusApplied)
		assert.False(t, withoutBonus.BonusApplied)
		assert.Greater(t, withBonus.RewardAmount, withoutBonus.RewardAmount)
	})
	t.Run("zero native amount", func(t *testing.T) {
		_, err := engine.Price(0, 0)
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
	t.Run("below minimum", func(t *testing.T) {
		params := testPricingParams()
		params.MinSwapAmount = 10_000
		bounded, err := NewPricingEngine(params)
		require.NoError(t, err)

		_, err = bounded.Price(1000, 10)
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
	t.Run("above maximum", func(t *testing.T) {
		_, err := engine.Price(2_000_000, 10)
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
	t.Run("truncates toward zero", func(t *testing.T) {
		quote, err := engine.Price(3, 10)
		require.NoError(t, err)

		// 3 * 900 / 1000 = 2.7 rounds down
		assert.Equal(t, uint64(2), quote.RewardAmount)
	})
}
