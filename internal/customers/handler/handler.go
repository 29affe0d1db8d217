// Package handler exposes customer history lookups over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"

	"leadtrack_backend/internal/customers/service"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
)

// Handler handles customer HTTP requests.
type Handler struct {
	service *service.Service
}

// New creates a customer handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// List handles GET /customers.
func (h *Handler) List(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	customers, err := h.service.List(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"customers": customers})
}

// Profile handles GET /customers/:phone.
func (h *Handler) Profile(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), actor, c.Param("phone"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}

// CheckPhone handles GET /customers/check-phone?phone=...
func (h *Handler) CheckPhone(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	raw := c.Query("phone")
	if raw == "" {
		httpkit.HandleError(c, apperr.Validation("phone query parameter is required"))
		return
	}

	resp, err := h.service.CheckPhone(c.Request.Context(), actor, raw)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
