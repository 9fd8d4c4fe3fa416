package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
)

// InitGlobalAccounting inserts the singleton accounting document. A second
// initialization attempt fails with DuplicateKeyError.
func (db *Database) InitGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	doc.Id = model.GlobalAccountingId
	_, err := db.collection(model.GlobalAccountingCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     model.GlobalAccountingId,
			Message: "global accounting already initialized",
		}
	}
	return err
}

func (db *Database) GetGlobalAccounting(ctx context.Context) (*model.GlobalAccountingDocument, error) {
	filter := bson.M{"_id": model.GlobalAccountingId}

	var doc model.GlobalAccountingDocument
	err := db.collection(model.GlobalAccountingCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.GlobalAccountingId,
				Message: "global accounting not initialized",
			}
		}
		return nil, fmt.Errorf("failed to get global accounting: %w", err)
	}
	return &doc, nil
}

// SaveGlobalAccounting replaces the singleton accounting document.
func (db *Database) SaveGlobalAccounting(ctx context.Context, doc *model.GlobalAccountingDocument) error {
	doc.Id = model.GlobalAccountingId
	filter := bson.M{"_id": model.GlobalAccountingId}
	res, err := db.collection(model.GlobalAccountingCollection).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     model.GlobalAccountingId,
			Message: "global accounting not initialized",
		}
	}
	return nil
}
