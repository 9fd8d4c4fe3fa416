package vaultclient

import (
	"context"
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
)

type vaultClientWithMetrics struct {
	vault VaultInterface
}

func NewVaultClientWithMetrics(vault VaultInterface) *vaultClientWithMetrics {
	return &vaultClientWithMetrics{vault: vault}
}

func (v *vaultClientWithMetrics) Balance(ctx context.Context, vaultId string) (uint64, error) {
	return runVaultClientMethodWithMetrics("Balance", func() (uint64, error) {
		return v.vault.Balance(ctx, vaultId)
	})
}

func (v *vaultClientWithMetrics) Transfer(ctx context.Context, from, to string, amount uint64) error {
	_, err := runVaultClientMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, v.vault.Transfer(ctx, from, to, amount)
	})
	return err
}

func runVaultClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordVaultClientLatency(duration, method, err != nil)
	return v, err
}
