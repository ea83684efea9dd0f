// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ClassHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: kv_backend, session_name, etc.
//   - Environment variables: CLASSHUB_KV_BACKEND, CLASSHUB_SESSION_NAME, etc.
//   - Command-line flags: --kv_backend, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "kv_backend", Default: BackendMemory, Desc: "Group storage backend: memory, mongo, redis or bolt"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "classhub", Desc: "MongoDB database name"},
	{Name: "mongo_collection", Default: "kv_entries", Desc: "MongoDB collection holding the group lists"},

	{Name: "redis_addr", Default: "localhost:6379", Desc: "Redis address (host:port)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	{Name: "bolt_path", Default: "./data/classhub.db", Desc: "Bolt database file"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "classhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime (e.g., 24h, 720h)"},

	{Name: "store_idle_ttl", Default: "30m", Desc: "Drop a user's cached group store after this long unused"},
	{Name: "store_sweep_interval", Default: "1m", Desc: "How often idle stores are swept"},

	{Name: "join_rate_limit", Default: 20, Desc: "Join attempts allowed per user per window"},
	{Name: "join_rate_window", Default: "1m", Desc: "Join rate limit window"},

	{Name: "migrate_legacy", Default: false, Desc: "Move a pre-per-user groups_v1 list to the first user who loads a store"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, CLASSHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLASSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		KVBackend: strings.ToLower(strings.TrimSpace(appValues.String("kv_backend"))),

		MongoURI:        appValues.String("mongo_uri"),
		MongoDatabase:   appValues.String("mongo_database"),
		MongoCollection: appValues.String("mongo_collection"),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		BoltPath: appValues.String("bolt_path"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		StoreIdleTTL:       appValues.Duration("store_idle_ttl", 30*time.Minute),
		StoreSweepInterval: appValues.Duration("store_sweep_interval", time.Minute),

		JoinRateLimit:  appValues.Int("join_rate_limit"),
		JoinRateWindow: appValues.Duration("join_rate_window", time.Minute),

		MigrateLegacy: appValues.Bool("migrate_legacy"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Only the settings of the selected backend are checked.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.KVBackend {
	case BackendMemory:
		logger.Warn("kv_backend=memory: groups are lost on restart")
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("kv_backend=mongo requires mongo_database")
		}
	case BackendRedis:
		if appCfg.RedisAddr == "" {
			return fmt.Errorf("kv_backend=redis requires redis_addr")
		}
	case BackendBolt:
		if appCfg.BoltPath == "" {
			return fmt.Errorf("kv_backend=bolt requires bolt_path")
		}
	default:
		return fmt.Errorf("unknown kv_backend %q (want memory, mongo, redis or bolt)", appCfg.KVBackend)
	}

	if appCfg.JoinRateLimit <= 0 {
		return fmt.Errorf("join_rate_limit must be positive, got %d", appCfg.JoinRateLimit)
	}
	if appCfg.JoinRateWindow <= 0 || appCfg.StoreSweepInterval <= 0 {
		return fmt.Errorf("join_rate_window and store_sweep_interval must be positive")
	}

	return nil
}
