// Package leads provides the lead lifecycle domain module.
package leads

import (
	"leadtrack_backend/internal/events"
	apphttp "leadtrack_backend/internal/http"
	"leadtrack_backend/internal/leads/handler"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/internal/leads/service"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"
	"leadtrack_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the leads domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new leads module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, log *logger.Logger, cfg config.ReviewConfig) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, val, bus, log, cfg)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	leads := ctx.Protected.Group("/leads")
	leads.POST("", m.handler.Create)
	leads.GET("/:id", m.handler.Get)
	leads.POST("/:id/categorize", m.handler.Categorize)
	leads.POST("/:id/outcome", m.handler.RecordOutcome)
	leads.POST("/:id/review/advance", m.handler.AdvanceReview)

	// Org-wide listing sits behind the admin group; the service re-checks
	// the capability against the actor's role.
	ctx.Admin.GET("/leads", m.handler.List)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
