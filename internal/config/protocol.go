package config

import (
	"fmt"

	"github.com/Luxor-Foundation/luxor-swap/internal/ledger"
)

// ProtocolConfig carries the genesis protocol parameters. They seed the
// protocol-params document on init-protocol and are mutable afterwards only
// through the admin config-update operation.
type ProtocolConfig struct {
	Admin                   string `mapstructure:"admin"`
	ExchangeRateNative      uint64 `mapstructure:"exchange-rate-native"`
	ExchangeRateReward      uint64 `mapstructure:"exchange-rate-reward"`
	BonusRate               uint64 `mapstructure:"bonus-rate"`
	MaxStakeCountToGetBonus uint64 `mapstructure:"max-stake-count-to-get-bonus"`
	MinSwapAmount           uint64 `mapstructure:"min-swap-amount"`
	MaxSwapAmount           uint64 `mapstructure:"max-swap-amount"`
	FeeTreasuryRate         uint64 `mapstructure:"fee-treasury-rate"`
	PurchaseEnabled         bool   `mapstructure:"purchase-enabled"`
	RedeemEnabled           bool   `mapstructure:"redeem-enabled"`
}

func (cfg *ProtocolConfig) Validate() error {
	if cfg.Admin == "" {
		return fmt.Errorf("protocol admin is required")
	}
	if cfg.FeeTreasuryRate >= ledger.RateDenominator {
		return fmt.Errorf("fee treasury rate must be below %d", ledger.RateDenominator)
	}
	pricing := ledger.PricingParams{
		ExchangeRateNative:      cfg.ExchangeRateNative,
		ExchangeRateReward:      cfg.ExchangeRateReward,
		BonusRate:               cfg.BonusRate,
		MaxStakeCountToGetBonus: cfg.MaxStakeCountToGetBonus,
		MinSwapAmount:           cfg.MinSwapAmount,
		MaxSwapAmount:           cfg.MaxSwapAmount,
	}
	if err := pricing.Validate(); err != nil {
		return fmt.Errorf("protocol pricing params: %w", err)
	}
	return nil
}
