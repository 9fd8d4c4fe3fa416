package db

import (
	"context"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	InitGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error
	GetGlobalAccounting(ctx context.Context) (*model.GlobalAccountingDocument, error)
	SaveGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error
	GetPosition(ctx context.Context, owner string) (*model.PositionDocument, error)
	UpsertPosition(ctx context.Context, doc *model.PositionDocument) error
	CommitOperationState(
		ctx context.Context,
		accounting *model.GlobalAccountingDocument,
		positions ...*model.PositionDocument,
	) error
	InitProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error
	GetProtocolParams(ctx context.Context) (*model.ProtocolParamsDocument, error)
	SaveProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error
}
