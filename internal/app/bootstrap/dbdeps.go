// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/store/kv/boltkv"
	"github.com/dalemusser/classhub/internal/app/system/ratelimit"
	"github.com/dalemusser/classhub/internal/app/system/workers"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the storage backend and the long-lived services built on it.
// Only the client for the selected backend is non-nil. Eviction is built here
// so Startup and Shutdown share the same worker.
type DBDeps struct {
	KV        kv.Store
	KVBackend string

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	RedisClient   *redis.Client
	Bolt          *boltkv.Store

	Registry *groupstore.Registry
	Joins    *ratelimit.JoinLimiter
	Eviction *workers.StoreEviction
}

// Pinger returns the backend's health probe, or nil if it has none.
func (d DBDeps) Pinger() kv.Pinger {
	p, _ := d.KV.(kv.Pinger)
	return p
}
