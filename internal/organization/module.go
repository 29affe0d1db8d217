// Package organization provides the organization profile domain module.
package organization

import (
	"leadtrack_backend/internal/adapters/storage"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/internal/organization/handler"
	"leadtrack_backend/internal/organization/repository"
	"leadtrack_backend/internal/organization/service"
	"leadtrack_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the organization domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new organization module with all dependencies wired.
// store may be nil when object storage is disabled.
func NewModule(pool *pgxpool.Pool, store storage.Service, qrBucket string, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, store, qrBucket, val)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "organization"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	org := ctx.Protected.Group("/organization")
	org.GET("", m.handler.GetProfile)
	org.PUT("", m.handler.UpdateProfile)
	org.GET("/review-qr", m.handler.ReviewQRLink)
	org.POST("/review-qr", m.handler.GenerateReviewQR)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
