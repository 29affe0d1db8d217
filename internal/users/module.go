// Package users provides the user administration domain module.
package users

import (
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/internal/users/handler"
	"leadtrack_backend/internal/users/repository"
	"leadtrack_backend/internal/users/service"
	"leadtrack_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the users domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new users module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, val)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "users"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/users", m.handler.List)
	ctx.Admin.PATCH("/users/:id/role", m.handler.UpdateRole)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
