package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Luxor-Foundation/luxor-swap/internal/db/model"
)

// InitProtocolParams inserts the singleton params document; re-running the
// initialization fails with DuplicateKeyError.
func (db *Database) InitProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	doc.Id = model.ProtocolParamsId
	_, err := db.collection(model.ProtocolParamsCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     model.ProtocolParamsId,
			Message: "protocol params already initialized",
		}
	}
	return err
}

func (db *Database) GetProtocolParams(ctx context.Context) (*model.ProtocolParamsDocument, error) {
	filter := bson.M{"_id": model.ProtocolParamsId}

	var doc model.ProtocolParamsDocument
	err := db.collection(model.ProtocolParamsCollection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.ProtocolParamsId,
				Message: "protocol params not initialized",
			}
		}
		return nil, fmt.Errorf("failed to get protocol params: %w", err)
	}
	return &doc, nil
}

func (db *Database) SaveProtocolParams(ctx context.Context, doc *model.ProtocolParamsDocument) error {
	doc.Id = model.ProtocolParamsId
	filter := bson.M{"_id": model.ProtocolParamsId}
	res, err := db.collection(model.ProtocolParamsCollection).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     model.ProtocolParamsId,
			Message: "protocol params not initialized",
		}
	}
	return nil
}
