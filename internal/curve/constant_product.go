// Package curve implements constant-product (x*y=k) swap quoting, used to
// derive slippage guards for external AMM swaps before they are requested.
package curve

import (
	"errors"

	sdkmath "cosmossdk.io/math"
)

// FeeRateDenominator is the denominator all AMM fee rates are quoted
// against. Matches the pool's own convention.
const FeeRateDenominator = 1_000_000

var (
	ErrEmptyReserves      = errors.New("pool reserve is empty")
	ErrZeroTradingTokens  = errors.New("quote results in zero trading tokens")
	ErrInvariantViolation = errors.New("constant product invariant violated")
)

// SwapResult is a priced constant-product trade.
type SwapResult struct {
	InputAmount      uint64
	OutputAmount     uint64
	TradeFee         uint64
	NewInputReserve  uint64
	NewOutputReserve uint64
}

// SwapBaseInput quotes an exact-input trade: the trade fee is deducted from
// the input, the remainder moves along the curve, and the post-trade
// constant must not fall below the pre-trade constant.
//
//	out = in' * y / (x + in')   where in' = in - fee
func SwapBaseInput(amountIn, inputReserve, outputReserve, tradeFeeRate uint64) (SwapResult, error) {
	if inputReserve == 0 || outputReserve == 0 {
		return SwapResult{}, ErrEmptyReserves
	}

	in := sdkmath.NewIntFromUint64(amountIn)
	x := sdkmath.NewIntFromUint64(inputReserve)
	y := sdkmath.NewIntFromUint64(outputReserve)

	fee := in.Mul(sdkmath.NewIntFromUint64(tradeFeeRate)).Quo(sdkmath.NewInt(FeeRateDenominator))
	inLessFee := in.Sub(fee)

	// (x + dx) * (y - dy) = x * y  =>  dy = dx * y / (x + dx)
	out := inLessFee.Mul(y).Quo(x.Add(inLessFee))
	if out.IsZero() {
		return SwapResult{}, ErrZeroTradingTokens
	}

	newX := x.Add(inLessFee)
	newY := y.Sub(out)
	if newX.Mul(newY).LT(x.Mul(y)) {
		return SwapResult{}, ErrInvariantViolation
	}
	if !out.IsUint64() || !newX.IsUint64() || !newY.IsUint64() || !fee.IsUint64() {
		return SwapResult{}, ErrInvariantViolation
	}

	return SwapResult{
		InputAmount:      amountIn,
		OutputAmount:     out.Uint64(),
		TradeFee:         fee.Uint64(),
		NewInputReserve:  newX.Uint64(),
		NewOutputReserve: newY.Uint64(),
	}, nil
}

// SwapBaseOutput quotes an exact-output trade, rounding the required input
// up so the pool never loses value.
//
//	in = ceil(x * dy / (y - dy)), grossed up for the trade fee
func SwapBaseOutput(amountOut, inputReserve, outputReserve, tradeFeeRate uint64) (SwapResult, error) {
	if inputReserve == 0 || outputReserve == 0 {
		return SwapResult{}, ErrEmptyReserves
	}
	if amountOut == 0 || amountOut >= outputReserve {
		return SwapResult{}, ErrZeroTradingTokens
	}

	x := sdkmath.NewIntFromUint64(inputReserve)
	y := sdkmath.NewIntFromUint64(outputReserve)
	dy := sdkmath.NewIntFromUint64(amountOut)

	// (x + dx) * (y - dy) = x * y  =>  dx = x * dy / (y - dy), rounded up
	denom := y.Sub(dy)
	inSwapped := ceilDiv(x.Mul(dy), denom)

	// gross up so that in - fee == inSwapped
	feeDen := sdkmath.NewInt(FeeRateDenominator)
	in := ceilDiv(inSwapped.Mul(feeDen), feeDen.Sub(sdkmath.NewIntFromUint64(tradeFeeRate)))
	fee := in.Sub(inSwapped)

	newX := x.Add(inSwapped)
	newY := y.Sub(dy)
	if newX.Mul(newY).LT(x.Mul(y)) {
		return SwapResult{}, ErrInvariantViolation
	}
	if !in.IsUint64() || !fee.IsUint64() || !newX.IsUint64() || !newY.IsUint64() {
		return SwapResult{}, ErrInvariantViolation
	}

	return SwapResult{
		InputAmount:      in.Uint64(),
		OutputAmount:     amountOut,
		TradeFee:         fee.Uint64(),
		NewInputReserve:  newX.Uint64(),
		NewOutputReserve: newY.Uint64(),
	}, nil
}

func ceilDiv(num, den sdkmath.Int) sdkmath.Int {
	q := num.Quo(den)
	if !num.Mod(den).IsZero() {
		q = q.Add(sdkmath.OneInt())
	}
	return q
}
