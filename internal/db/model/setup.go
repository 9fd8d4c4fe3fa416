package model

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Luxor-Foundation/luxor-swap/internal/config"
)

var collections = []string{
	GlobalAccountingCollection,
	PositionCollection,
	ProtocolParamsCollection,
}

// Setup creates the collections the service relies on. Mongo creates
// collections lazily; doing it up front lets the session transactions in
// the db layer run against existing namespaces.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return err
	}
	existingSet := make(map[string]bool, len(existing))
	for _, name := range existing {
		existingSet[name] = true
	}

	for _, name := range collections {
		if existingSet[name] {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return err
		}
		log.Debug().Str("collection", name).Msg("Created collection")
	}

	log.Info().Msg("Database setup completed successfully")
	return client.Disconnect(ctx)
}
