package config

import (
	"fmt"
	"time"
)

// ApiConfig configures the HTTP operation API. Admin keys are the identity
// collaborator: a caller presenting one of these keys is an admin.
type ApiConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	AdminKeys    []string      `mapstructure:"admin-keys"`
}

func (cfg *ApiConfig) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("api host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("api port must be in the 1-65535 range")
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("api write timeout must be positive")
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("api read timeout must be positive")
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("api idle timeout must be positive")
	}
	if len(cfg.AdminKeys) == 0 {
		return fmt.Errorf("at least one api admin key is required")
	}
	return nil
}

func (cfg *ApiConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
