package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
)

func (db *Database) GetPosition(ctx context.Context, owner string) (*model.PositionDocument, error) {
	filter := bson.M{"_id": owner}

	var doc model.PositionDocument
	err := db.collection(model.PositionCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     owner,
				Message: "position not found",
			}
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return &doc, nil
}

// UpsertPosition writes a position document, creating it on first purchase.
func (db *Database) UpsertPosition(ctx context.Context, doc *model.PositionDocument) error {
	filter := bson.M{"_id": doc.Owner}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.PositionCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

// CommitOperationState writes the accounting document and any touched
// positions in one mongo session transaction, so an operation's state
// transition lands atomically.
func (db *Database) CommitOperationState(
	ctx context.Context,
	accounting *model.GlobalAccountingDocument,
	positions ...*model.PositionDocument,
) error {
	session, err := db.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		if err := db.SaveGlobalAccounting(sessCtx, accounting); err != nil {
			return nil, err
		}
		for _, position := range positions {
			if err := db.UpsertPosition(sessCtx, position); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
