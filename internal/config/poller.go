package config

import (
	"errors"
	"time"
)

type PollerConfig struct {
	BuybackEnabled         bool          `mapstructure:"buyback-enabled"`
	BuybackPollingInterval time.Duration `mapstructure:"buyback-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.BuybackEnabled && cfg.BuybackPollingInterval <= 0 {
		return errors.New("buyback-polling-interval must be positive when the buyback poller is enabled")
	}
	return nil
}
