// Package handler exposes user administration over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadtrack_backend/internal/users/service"
	"leadtrack_backend/internal/users/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
)

// Handler handles user HTTP requests.
type Handler struct {
	service *service.Service
}

// New creates a users handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// List handles GET /admin/users.
func (h *Handler) List(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	users, err := h.service.List(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"users": users})
}

// UpdateRole handles PATCH /admin/users/:id/role.
func (h *Handler) UpdateRole(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.Validation("user id is not a valid identifier"))
		return
	}

	var req transport.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), actor, targetID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}
