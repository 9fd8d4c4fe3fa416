package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luxor-Foundation/luxor-swap/internal/curve"
	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

func TestQuoteExactOutput(t *testing.T) {
	ctx := t.Context()

	t.Run("matches the pool curve", func(t *testing.T) {
		env := newTestEnv(t)

		view, err := env.service.QuoteExactOutput(ctx, 100_000)
		require.NoError(t, err)

		expected, err := curve.SwapBaseOutput(
			100_000, env.amm.nativeRes, env.amm.rewardRes, env.service.cfg.Amm.TradeFeeRate,
		)
		require.NoError(t, err)
		assert.Equal(t, expected.OutputAmount, view.RewardTokenOut)
		assert.Equal(t, expected.InputAmount, view.NativeRequired)
		assert.Equal(t, expected.TradeFee, view.TradeFee)
	})
	t.Run("quoted input buys at least the requested output", func(t *testing.T) {
		env := newTestEnv(t)

		view, err := env.service.QuoteExactOutput(ctx, 250_000)
		require.NoError(t, err)

		bought, err := curve.SwapBaseInput(
			view.NativeRequired, env.amm.nativeRes, env.amm.rewardRes, env.service.cfg.Amm.TradeFeeRate,
		)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bought.OutputAmount, view.RewardTokenOut)
	})
	t.Run("output exceeding the reserve", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.QuoteExactOutput(ctx, env.amm.rewardRes)
		assert.ErrorIs(t, err, ledger.ErrAmountOutOfRange)
	})
	t.Run("zero output", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.QuoteExactOutput(ctx, 0)
		assert.ErrorIs(t, err, ledger.ErrAmountOutOfRange)
	})
	t.Run("drained pool", func(t *testing.T) {
		env := newTestEnv(t)
		env.amm.nativeRes = 0

		_, err := env.service.QuoteExactOutput(ctx, 1000)
		assert.ErrorIs(t, err, ledger.ErrSwapFailed)
	})
}
