package config

import (
	"fmt"
	"time"
)

// VaultConfig configures the custody service client and names the vaults
// the protocol operates on. The core only ever reads balances and requests
// transfers against these ids.
type VaultConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`

	NativeCustodyVault string `mapstructure:"native-custody-vault"`
	RewardVault        string `mapstructure:"reward-vault"`
	TreasuryVault      string `mapstructure:"treasury-vault"`
}

func (cfg *VaultConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("vault endpoint is required")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("vault timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return fmt.Errorf("vault max retry times must be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("vault retry interval must be positive")
	}
	if cfg.NativeCustodyVault == "" {
		return fmt.Errorf("native custody vault id is required")
	}
	if cfg.RewardVault == "" {
		return fmt.Errorf("reward vault id is required")
	}
	if cfg.TreasuryVault == "" {
		return fmt.Errorf("treasury vault id is required")
	}
	return nil
}
