package config

import (
	"fmt"
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/curve"
)

// AmmConfig configures the external market-maker client used for buybacks.
// SlippageRate bounds how far below the constant-product quote the executed
// output may land before the swap is rejected.
type AmmConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	TradeFeeRate  uint64        `mapstructure:"trade-fee-rate"`
	SlippageRate  uint64        `mapstructure:"slippage-rate"`
}

func (cfg *AmmConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("amm endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("amm timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("amm max retry times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("amm retry interval must be positive")
	}
	if cfg.TradeFeeRate >= curve.FeeRateDenominator {
		return fmt.Errorf("amm trade fee rate must be below %d", curve.FeeRateDenominator)
	}
	if cfg.SlippageRate >= curve.FeeRateDenominator {
		return fmt.Errorf("amm slippage rate must be below %d", curve.FeeRateDenominator)
	}
	return nil
}
