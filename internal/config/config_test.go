package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYaml = `
db:
  username: user
  password: password
  address: mongodb://localhost:27017
  db-name: luxor-swap
api:
  host: 0.0.0.0
  port: 8080
  write-timeout: 30s
  read-timeout: 30s
  idle-timeout: 60s
  admin-keys:
    - test-admin-key
metrics:
  host: 0.0.0.0
  port: 2112
queue:
  username: guest
  password: guest
  url: localhost:5672
  exchange-name: luxor.swap.events
  publish-timeout: 5s
vault:
  endpoint: http://localhost:9000
  timeout: 10s
  max-retry-times: 3
  retry-interval: 5s
  native-custody-vault: native-custody
  reward-vault: reward-vault
  treasury-vault: treasury-vault
amm:
  endpoint: http://localhost:9001
  timeout: 10s
  max-retry-times: 3
  retry-interval: 5s
  trade-fee-rate: 2500
  slippage-rate: 10000
protocol:
  admin: admin-account
  exchange-rate-native: 1000
  exchange-rate-reward: 900
  bonus-rate: 100000
  max-stake-count-to-get-bonus: 5
  min-swap-amount: 1
  max-swap-amount: 1000000
  fee-treasury-rate: 250000
  purchase-enabled: true
  redeem-enabled: true
poller:
  buyback-enabled: true
  buyback-polling-interval: 60s
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}

func TestNew(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, validConfigYaml))
		require.NoError(t, err)

		assert.Equal(t, "luxor-swap", cfg.Db.DbName)
		assert.Equal(t, "0.0.0.0:8080", cfg.Api.Address())
		assert.Equal(t, 2112, cfg.Metrics.GetMetricsPort())
		assert.Equal(t, "native-custody", cfg.Vault.NativeCustodyVault)
		assert.Equal(t, uint64(250_000), cfg.Protocol.FeeTreasuryRate)
		assert.True(t, cfg.Poller.BuybackEnabled)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
	t.Run("amm fee rate out of range", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, validConfigYaml))
		require.NoError(t, err)

		cfg.Amm.TradeFeeRate = 1_000_000
		assert.Error(t, cfg.Amm.Validate())
	})
	t.Run("protocol bounds inverted", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, validConfigYaml))
		require.NoError(t, err)

		cfg.Protocol.MinSwapAmount = 10
		cfg.Protocol.MaxSwapAmount = 1
		assert.Error(t, cfg.Protocol.Validate())
	})
	t.Run("poller interval required when enabled", func(t *testing.T) {
		cfg, err := New(writeConfigFile(t, validConfigYaml))
		require.NoError(t, err)

		cfg.Poller.BuybackPollingInterval = 0
		assert.Error(t, cfg.Poller.Validate())
	})
}
