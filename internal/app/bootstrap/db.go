// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/store/kv/boltkv"
	"github.com/dalemusser/classhub/internal/app/store/kv/mongokv"
	"github.com/dalemusser/classhub/internal/app/store/kv/rediskv"
	"github.com/dalemusser/classhub/internal/app/system/indexes"
	"github.com/dalemusser/classhub/internal/app/system/ratelimit"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// redisKeyPrefix namespaces ClassHub keys within a shared Redis database.
const redisKeyPrefix = "classhub:"

// ConnectDB opens the configured storage backend and builds the store
// registry, join limiter and eviction worker on top of it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{KVBackend: appCfg.KVBackend}

	switch appCfg.KVBackend {
	case BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}
		db := client.Database(appCfg.MongoDatabase)
		deps.MongoClient = client
		deps.MongoDatabase = db
		deps.KV = mongokv.New(db, appCfg.MongoCollection)

	case BackendRedis:
		client := rediskv.NewClient(appCfg.RedisAddr, appCfg.RedisPassword, appCfg.RedisDB)
		deps.RedisClient = client
		deps.KV = rediskv.New(client, redisKeyPrefix)

	case BackendBolt:
		store, err := boltkv.Open(appCfg.BoltPath)
		if err != nil {
			return DBDeps{}, fmt.Errorf("bolt open %s: %w", appCfg.BoltPath, err)
		}
		deps.Bolt = store
		deps.KV = store

	default:
		deps.KV = kv.NewMemory()
	}

	if p := deps.Pinger(); p != nil {
		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		err := p.Ping(pingCtx)
		cancel()
		if err != nil {
			closeBackends(context.Background(), deps, logger)
			return DBDeps{}, fmt.Errorf("%s ping: %w", appCfg.KVBackend, err)
		}
	}

	deps.Registry = groupstore.NewRegistry(deps.KV, appCfg.MigrateLegacy, logger)
	deps.Joins = ratelimit.NewJoinLimiter(appCfg.JoinRateLimit, appCfg.JoinRateWindow)
	deps.Eviction = workers.NewStoreEviction(deps.Registry, logger,
		appCfg.StoreSweepInterval, appCfg.StoreIdleTTL, deps.Joins)

	logger.Info("group storage connected", zap.String("backend", appCfg.KVBackend))
	return deps, nil
}

// EnsureSchema creates the kv collection's indexes when MongoDB is the
// backend. Other backends need no setup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()
	return indexes.EnsureAll(ctx, deps.MongoDatabase, appCfg.MongoCollection, logger)
}
