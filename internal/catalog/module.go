// Package catalog provides the product catalog domain module.
package catalog

import (
	"leadtrack_backend/internal/catalog/handler"
	"leadtrack_backend/internal/catalog/repository"
	"leadtrack_backend/internal/catalog/service"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired
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
	return "catalog"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	catalog := ctx.Protected.Group("/catalog")
	catalog.GET("/categories", m.handler.ListCategories)
	catalog.POST("/categories", m.handler.CreateCategory)
	catalog.DELETE("/categories/:id", m.handler.DeleteCategory)
	catalog.GET("/models", m.handler.ListModels)
	catalog.POST("/models", m.handler.CreateModel)
	catalog.DELETE("/models/:id", m.handler.DeleteModel)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
