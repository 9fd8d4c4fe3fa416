package ammclient

import (
	"context"
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
)

type ammClientWithMetrics struct {
	amm AmmInterface
}

func NewAmmClientWithMetrics(amm AmmInterface) *ammClientWithMetrics {
	return &ammClientWithMetrics{amm: amm}
}

func (a *ammClientWithMetrics) Reserves(ctx context.Context) (*Reserves, error) {
	return runAmmClientMethodWithMetrics("Reserves", func() (*Reserves, error) {
		return a.amm.Reserves(ctx)
	})
}

func (a *ammClientWithMetrics) Swap(ctx context.Context, amountIn, minimumOut uint64) (uint64, error) {
	return runAmmClientMethodWithMetrics("Swap", func() (uint64, error) {
		return a.amm.Swap(ctx, amountIn, minimumOut)
	})
}

func runAmmClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordAmmClientLatency(duration, method, err != nil)
	return v, err
}
