// Package handler exposes organization management over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"

	"leadtrack_backend/internal/organization/service"
	"leadtrack_backend/internal/organization/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
)

// Handler handles organization HTTP requests.
type Handler struct {
	service *service.Service
}

// New creates an organization handler.
func New(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// GetProfile handles GET /organization.
func (h *Handler) GetProfile(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	org, err := h.service.GetProfile(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, org)
}

// UpdateProfile handles PUT /organization.
func (h *Handler) UpdateProfile(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	org, err := h.service.UpdateProfile(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, org)
}

// GenerateReviewQR handles POST /organization/review-qr.
func (h *Handler) GenerateReviewQR(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	org, err := h.service.GenerateReviewQR(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, org)
}

// ReviewQRLink handles GET /organization/review-qr.
func (h *Handler) ReviewQRLink(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	link, err := h.service.ReviewQRLink(c.Request.Context(), actor)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, link)
}
