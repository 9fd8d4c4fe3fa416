package ledger

import (
	"errors"
	"fmt"
)

// RateDenominator is the common denominator for all protocol rates
// (bonus uplift, treasury fee). A rate of 1_000_000 is 100%.
const RateDenominator = 1_000_000

// PricingParams configure the purchase pricing rule. The exchange ratio is
// a rational: ExchangeRateNative native units buy ExchangeRateReward reward
// token units at the base price.
type PricingParams struct {
	ExchangeRateNative      uint64
	ExchangeRateReward      uint64
	BonusRate               uint64 // parts-per-RateDenominator uplift on the reward side
	MaxStakeCountToGetBonus uint64
	MinSwapAmount           uint64
	MaxSwapAmount           uint64
}

func (p PricingParams) Validate() error {
	if p.ExchangeRateNative == 0 || p.ExchangeRateReward == 0 {
		return errors.New("exchange rate must be positive on both sides")
	}
	if p.MinSwapAmount > p.MaxSwapAmount {
		return errors.New("min swap amount exceeds max swap amount")
	}
	if p.BonusRate >= RateDenominator {
		return errors.New("bonus rate must be below the rate denominator")
	}
	return nil
}

// PricingEngine computes the reward-token amount owed for a native-asset
// stake. The bonus applies to the reward-token side only; the native amount
// staked is exactly what the purchaser supplied.
type PricingEngine struct {
	params PricingParams
}

func NewPricingEngine(params PricingParams) (*PricingEngine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing params: %w", err)
	}
	return &PricingEngine{params: params}, nil
}

// PurchaseQuote is the outcome of pricing a stake.
type PurchaseQuote struct {
	NativeAmount uint64
	RewardAmount uint64
	BonusApplied bool
}

// Price prices a native stake in reward tokens. totalStakeEvents is the
// pre-increment event count: the purchase that crosses the bonus cutoff
// still receives the bonus. A quote outside the configured swap bounds
// fails with ErrAmountOutOfRange and has no effect.
func (e *PricingEngine) Price(nativeAmount, totalStakeEvents uint64) (PurchaseQuote, error) {
	if nativeAmount == 0 {
		return PurchaseQuote{}, fmt.Errorf("zero native amount: %w", ErrAmountOutOfRange)
	}
	reward, err := mulDiv(nativeAmount, e.params.ExchangeRateReward, e.params.ExchangeRateNative)
	if err != nil {
		return PurchaseQuote{}, err
	}
	bonusApplied := totalStakeEvents < e.params.MaxStakeCountToGetBonus
	if bonusApplied {
		bonus, err := mulDiv(reward, e.params.BonusRate, RateDenominator)
		if err != nil {
			return PurchaseQuote{}, err
		}
		reward, err = addUint64(reward, bonus)
		if err != nil {
			return PurchaseQuote{}, err
		}
	}
	if reward < e.params.MinSwapAmount || reward > e.params.MaxSwapAmount {
		return PurchaseQuote{}, fmt.Errorf(
			"reward amount %d outside [%d, %d]: %w",
			reward, e.params.MinSwapAmount, e.params.MaxSwapAmount, ErrAmountOutOfRange,
		)
	}
	return PurchaseQuote{
		NativeAmount: nativeAmount,
		RewardAmount: reward,
		BonusApplied: bonusApplied,
	}, nil
}
