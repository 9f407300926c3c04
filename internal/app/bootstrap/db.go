// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/app/system/indexes"
	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// ConnectDB establishes the MongoDB connection and constructs the Whop
// client. Both live for the life of the process and are shared through
// DBDeps.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	provider, err := whop.New(whop.Config{
		APIKey:  appCfg.WhopAPIKey,
		BaseURL: appCfg.WhopAPIBaseURL,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("whop client: %w", err)
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Whop:          provider,
	}, nil
}

// EnsureSchema creates the report indexes. Index creation is idempotent,
// so this runs on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	logger.Info("mongodb indexes ensured")
	return nil
}
