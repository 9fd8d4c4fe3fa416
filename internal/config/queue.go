package config

import (
	"fmt"
	"time"
)

// QueueConfig configures the event sink exchange. Publishing is
// fire-and-forget; the timeout only bounds how long a single publish may
// hold the channel.
type QueueConfig struct {
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Url            string        `mapstructure:"url"`
	ExchangeName   string        `mapstructure:"exchange-name"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Username == "" {
		return fmt.Errorf("queue username is required")
	}
	if cfg.Password == "" {
		return fmt.Errorf("queue password is required")
	}
	if cfg.Url == "" {
		return fmt.Errorf("queue url is required")
	}
	if cfg.ExchangeName == "" {
		return fmt.Errorf("queue exchange name is required")
	}
	if cfg.PublishTimeout <= 0 {
		return fmt.Errorf("queue publish timeout must be positive")
	}
	return nil
}

func (cfg *QueueConfig) ConnectionUrl() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.Username, cfg.Password, cfg.Url)
}
