// Package customers provides the customer history domain module.
package customers

import (
	"leadtrack_backend/internal/customers/handler"
	"leadtrack_backend/internal/customers/repository"
	"leadtrack_backend/internal/customers/service"
	apphttp "leadtrack_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the customers domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new customers module with all dependencies wired
func NewModule(pool *pgxpool.Pool) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "customers"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	customers := ctx.Protected.Group("/customers")
	customers.GET("", m.handler.List)
	// check-phone is registered before the parameterized profile route so
	// Gin does not swallow it as a phone value.
	customers.GET("/check-phone", m.handler.CheckPhone)
	customers.GET("/:phone", m.handler.Profile)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
