// internal/handlers/router.go
package handlers

import (
	"net/http"
	"time"

	"github.com/ammerola/roadie-bag/internal/core/ports"
	"github.com/ammerola/roadie-bag/internal/handlers/middleware"
	"github.com/ammerola/roadie-bag/internal/pkg/logger"
)

const apiV1 = "/api/v1"

// RouterConfig carries every handler and middleware setting the API needs
type RouterConfig struct {
	Items   *ItemHandler
	Draws   *DrawHandler
	Auth    *AuthHandler
	Exports *ExportHandler
	Health  *HealthHandler

	AuthService ports.AuthService

	RequestIDHeader   string
	AllowedOrigins    []string
	SecureHeaders     bool
	RateLimitRequests int
	RateLimitDuration time.Duration
	RequestTimeout    time.Duration

	Logger *logger.Logger
}

// NewRouter registers the API routes and wraps them in the middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Health != nil {
		mux.HandleFunc("GET /health", cfg.Health.Health)
		mux.HandleFunc("GET /ready", cfg.Health.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", cfg.Health.Health)
	}

	mux.HandleFunc("POST "+apiV1+"/auth/signup", cfg.Auth.Signup)
	mux.HandleFunc("POST "+apiV1+"/auth/login", cfg.Auth.Login)
	mux.HandleFunc("POST "+apiV1+"/auth/logout", cfg.Auth.Logout)
	mux.HandleFunc("GET "+apiV1+"/auth/me", cfg.Auth.Me)

	mux.HandleFunc("GET "+apiV1+"/items", cfg.Items.ListItems)
	mux.HandleFunc("POST "+apiV1+"/items", cfg.Items.CreateItem)
	mux.HandleFunc("GET "+apiV1+"/items/{id}", cfg.Items.GetItem)
	mux.HandleFunc("PUT "+apiV1+"/items/{id}", cfg.Items.UpdateItem)
	mux.HandleFunc("DELETE "+apiV1+"/items/{id}", cfg.Items.DeleteItem)
	mux.HandleFunc("GET "+apiV1+"/items/{id}/draws", cfg.Items.ItemHistory)

	mux.HandleFunc("POST "+apiV1+"/draws", cfg.Draws.Draw)
	mux.HandleFunc("GET "+apiV1+"/draws/last", cfg.Draws.Last)
	mux.HandleFunc("PUT "+apiV1+"/draws/{id}", cfg.Draws.UpdateTaken)
	mux.HandleFunc("POST "+apiV1+"/draws/{id}/done", cfg.Draws.MarkDone)

	if cfg.Exports != nil {
		mux.HandleFunc("POST "+apiV1+"/exports", cfg.Exports.RequestExport)
		mux.HandleFunc("GET "+apiV1+"/exports/{id}", cfg.Exports.ExportStatus)
	}

	slogger := cfg.Logger.Logger

	// First listed runs first
	mws := []middleware.Middleware{
		middleware.RequestID(cfg.RequestIDHeader),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(slogger),
	}
	if len(cfg.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitDuration > 0 {
		mws = append(mws, middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitDuration))
	}
	mws = append(mws, middleware.Authenticate(cfg.AuthService, slogger))
	if cfg.RequestTimeout > 0 {
		mws = append(mws, middleware.Timeout(cfg.RequestTimeout))
	}

	return middleware.Chain(mux, mws...)
}
