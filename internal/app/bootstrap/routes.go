// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/classhub/internal/app/features/errors"
	groupsfeature "github.com/dalemusser/classhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/classhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/classhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/classhub/internal/app/features/logout"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connection, schema setup,
// and Startup have completed. ClassHub applies the session middleware and
// mounts the health, login, logout and groups feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName,
		appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	return newRouter(sessionMgr, deps, logger), nil
}

func newRouter(sessionMgr *auth.SessionManager, deps DBDeps, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Pinger(), deps.KVBackend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Groups
	groupsHandler := groupsfeature.NewHandler(deps.Registry, deps.Joins, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	return r
}
