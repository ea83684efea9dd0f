// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background work and closes the storage backend.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Eviction != nil {
		deps.Eviction.Stop()
	}
	return closeBackends(ctx, deps, logger)
}

func closeBackends(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	var errs []error
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if deps.RedisClient != nil {
		logger.Info("closing Redis client")
		if err := deps.RedisClient.Close(); err != nil {
			logger.Error("Redis close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if deps.Bolt != nil {
		logger.Info("closing Bolt database")
		if err := deps.Bolt.Close(); err != nil {
			logger.Error("Bolt close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
