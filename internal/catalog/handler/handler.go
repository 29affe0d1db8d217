// Package handler exposes catalog management over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadtrack_backend/internal/catalog/service"
	"leadtrack_backend/internal/catalog/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
)

// Handler handles catalog HTTP requests.
type Handler struct {
	service *service.Service
}

// New creates a catalog handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// ListCategories handles GET /catalog/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	categories, err := h.service.ListCategories(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"categories": categories})
}

// CreateCategory handles POST /catalog/categories.
func (h *Handler) CreateCategory(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	var req transport.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, cat)
}

// DeleteCategory handles DELETE /catalog/categories/:id.
func (h *Handler) DeleteCategory(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), actor, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}

// ListModels handles GET /catalog/models?categoryId=...
func (h *Handler) ListModels(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	var categoryID *uuid.UUID
	if raw := c.Query("categoryId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.HandleError(c, apperr.Validation("categoryId is not a valid identifier"))
			return
		}
		categoryID = &parsed
	}

	models, err := h.service.ListModels(c.Request.Context(), actor, categoryID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"models": models})
}

// CreateModel handles POST /catalog/models.
func (h *Handler) CreateModel(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	var req transport.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	m, err := h.service.CreateModel(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, m)
}

// DeleteModel handles DELETE /catalog/models/:id.
func (h *Handler) DeleteModel(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteModel(c.Request.Context(), actor, id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}

func (h *Handler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.Validation("id is not a valid identifier"))
		return uuid.Nil, false
	}
	return id, true
}
