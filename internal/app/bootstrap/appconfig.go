// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits); AppConfig
// covers the group store's backend, sessions, and background housekeeping.
type AppConfig struct {
	// Storage backend for the per-user group lists: memory, mongo, redis or bolt.
	KVBackend string

	// MongoDB (kv_backend=mongo)
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Redis (kv_backend=redis)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Bolt (kv_backend=bolt)
	BoltPath string

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: classhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Store registry housekeeping
	StoreIdleTTL       time.Duration // drop a user's cached store after this long unused
	StoreSweepInterval time.Duration // how often the eviction worker runs

	// Join abuse limits
	JoinRateLimit  int
	JoinRateWindow time.Duration

	// Move a pre-per-user "groups_v1" list to the first user who loads a store.
	MigrateLegacy bool
}

// Backend names accepted for kv_backend.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendBolt   = "bolt"
)
