package db

import (
	"context"
	"time"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
	"github.com/Luxor-Foundation/luxor-swap/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) InitGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	return d.run("InitGlobalAccounting", func() error {
		return d.db.InitGlobalAccounting(ctx, doc)
	})
}

func (d *DbWithMetrics) GetGlobalAccounting(ctx context.Context) (result *model.GlobalAccountingDocument, err error) {
	//nolint:errcheck
	d.run("GetGlobalAccounting", func() error {
		result, err = d.db.GetGlobalAccounting(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	return d.run("SaveGlobalAccounting", func() error {
		return d.db.SaveGlobalAccounting(ctx, doc)
	})
}

func (d *DbWithMetrics) GetPosition(ctx context.Context, owner string) (result *model.PositionDocument, err error) {
	//nolint:errcheck
	d.run("GetPosition", func() error {
		result, err = d.db.GetPosition(ctx, owner)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertPosition(ctx context.Context, doc *model.PositionDocument) error {
	return d.run("UpsertPosition", func() error {
		return d.db.UpsertPosition(ctx, doc)
	})
}

func (d *DbWithMetrics) CommitOperationState(
	ctx context.Context,
	accounting *model.GlobalAccountingDocument,
	positions ...*model.PositionDocument,
) error {
	return d.run("CommitOperationState", func() error {
		return d.db.CommitOperationState(ctx, accounting, positions...)
	})
}

func (d *DbWithMetrics) InitProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	return d.run("InitProtocolParams", func() error {
		return d.db.InitProtocolParams(ctx, doc)
	})
}

func (d *DbWithMetrics) GetProtocolParams(ctx context.Context) (result *model.ProtocolParamsDocument, err error) {
	//nolint:errcheck
	d.run("GetProtocolParams", func() error {
		result, err = d.db.GetProtocolParams(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	return d.run("SaveProtocolParams", func() error {
		return d.db.SaveProtocolParams(ctx, doc)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
