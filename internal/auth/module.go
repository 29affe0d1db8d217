// Package auth provides the authentication domain module.
package auth

import (
	"leadtrack_backend/internal/auth/handler"
	"leadtrack_backend/internal/auth/repository"
	"leadtrack_backend/internal/auth/service"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.V1.Group("/auth")
	// Credential endpoints sit behind the stricter auth rate limiter.
	public.Use(ctx.AuthRateLimiter.RateLimit())
	public.POST("/sign-in", m.handler.SignIn)
	public.POST("/refresh", m.handler.Refresh)
	public.POST("/sign-out", m.handler.SignOut)

	protected := ctx.Protected.Group("/auth")
	protected.GET("/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
