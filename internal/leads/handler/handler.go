// Package handler exposes the lead lifecycle over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/service"
	"leadtrack_backend/internal/leads/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
)

// Handler handles lead HTTP requests.
type Handler struct {
	service *service.Service
}

// New creates a lead handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// Create handles POST /leads.
func (h *Handler) Create(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	lead, err := h.service.Create(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, lead)
}

// Get handles GET /leads/:id.
func (h *Handler) Get(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	lead, err := h.service.Get(c.Request.Context(), actor, leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// Categorize handles POST /leads/:id/categorize.
func (h *Handler) Categorize(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	var req transport.CategorizeLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	lead, err := h.service.Categorize(c.Request.Context(), actor, leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// RecordOutcome handles POST /leads/:id/outcome.
func (h *Handler) RecordOutcome(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	var req transport.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	lead, err := h.service.RecordOutcome(c.Request.Context(), actor, leadID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// AdvanceReview handles POST /leads/:id/review/advance.
func (h *Handler) AdvanceReview(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	leadID, ok := h.leadID(c)
	if !ok {
		return
	}

	lead, err := h.service.AdvanceReview(c.Request.Context(), actor, leadID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, lead)
}

// List handles GET /admin/leads.
func (h *Handler) List(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	leads, err := h.service.ListOrganizationLeads(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"leads": leads})
}

func (h *Handler) leadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.Validation("lead id is not a valid identifier"))
		return uuid.Nil, false
	}
	return id, true
}
