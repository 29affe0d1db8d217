// Package handler exposes authentication over HTTP.
package handler

import (
	"github.com/gin-gonic/gin"

	"leadtrack_backend/internal/auth/service"
	"leadtrack_backend/internal/auth/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

// Handler handles auth HTTP requests.
type Handler struct {
	service   *service.Service
	validator *validator.Validator
}

// New creates an auth handler.
func New(svc *service.Service, v *validator.Validator) *Handler {
	return &Handler{service: svc, validator: v}
}

// SignIn handles POST /auth/sign-in.
func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid sign-in payload", err))
		return
	}

	resp, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Refresh handles POST /auth/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	var req transport.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpkit.HandleError(c, apperr.Wrap(apperr.KindValidation, "invalid refresh payload", err))
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// SignOut handles POST /auth/sign-out.
func (h *Handler) SignOut(c *gin.Context) {
	var req transport.SignOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("invalid request body"))
		return
	}

	if err := h.service.SignOut(c.Request.Context(), req.RefreshToken); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "signed out"})
}

// GetMe handles GET /auth/me.
func (h *Handler) GetMe(c *gin.Context) {
	actor := httpkit.MustGetIdentity(c)
	if actor == nil {
		return
	}

	profile, err := h.service.GetMe(c.Request.Context(), actor.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, profile)
}
