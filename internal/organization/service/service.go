// Package service implements organization profile management and the
// Google-review QR workflow shown to customers after a won sale.
package service

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/skip2/go-qrcode"

	"leadtrack_backend/internal/adapters/storage"
	"leadtrack_backend/internal/organization/repository"
	"leadtrack_backend/internal/organization/transport"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

const qrImageSize = 512

// Service orchestrates organization operations.
type Service struct {
	repo      repository.OrganizationRepository
	storage   storage.Service
	bucket    string
	validator *validator.Validator
}

// NewService creates an organization service. storage may be nil when object
// storage is not configured; QR operations then report an internal error.
func NewService(repo repository.OrganizationRepository, store storage.Service, bucket string, v *validator.Validator) *Service {
	return &Service{repo: repo, storage: store, bucket: bucket, validator: v}
}

// GetProfile returns the actor's organization profile.
func (s *Service) GetProfile(ctx context.Context, actor httpkit.Identity) (transport.OrganizationResponse, error) {
	org, err := s.repo.GetByID(ctx, actor.OrgID())
	if errors.Is(err, repository.ErrNotFound) {
		return transport.OrganizationResponse{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load organization", err)
	}
	return transport.ToOrganizationResponse(org), nil
}

// UpdateProfile updates the organization's name and review URL. Requires
// manager or above.
func (s *Service) UpdateProfile(ctx context.Context, actor httpkit.Identity, req transport.UpdateProfileRequest) (transport.OrganizationResponse, error) {
	if err := s.requireManager(actor); err != nil {
		return transport.OrganizationResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindValidation, "invalid profile payload", err)
	}

	org, err := s.repo.UpdateProfile(ctx, actor.OrgID(), strings.TrimSpace(req.Name), req.GoogleReviewURL)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.OrganizationResponse{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update organization", err)
	}
	return transport.ToOrganizationResponse(org), nil
}

// GenerateReviewQR renders the organization's Google review URL as a QR
// image and stores it. The stored key replaces any previous one; staff show
// the image to customers right after a winning sale is recorded.
func (s *Service) GenerateReviewQR(ctx context.Context, actor httpkit.Identity) (transport.OrganizationResponse, error) {
	if err := s.requireManager(actor); err != nil {
		return transport.OrganizationResponse{}, err
	}
	if s.storage == nil {
		return transport.OrganizationResponse{}, apperr.Internal("object storage is not configured")
	}

	org, err := s.repo.GetByID(ctx, actor.OrgID())
	if errors.Is(err, repository.ErrNotFound) {
		return transport.OrganizationResponse{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load organization", err)
	}
	if org.GoogleReviewURL == nil || *org.GoogleReviewURL == "" {
		return transport.OrganizationResponse{}, apperr.Validation("set a Google review URL before generating a QR code")
	}

	png, err := qrcode.Encode(*org.GoogleReviewURL, qrcode.Medium, qrImageSize)
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to render QR code", err)
	}

	fileKey, err := s.storage.UploadFile(ctx, s.bucket, org.ID.String(), "review-qr.png", "image/png",
		bytes.NewReader(png), int64(len(png)))
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store QR image", err)
	}

	updated, err := s.repo.SetReviewQRKey(ctx, org.ID, fileKey)
	if err != nil {
		return transport.OrganizationResponse{}, apperr.Wrap(apperr.KindInternal, "failed to record QR image", err)
	}
	return transport.ToOrganizationResponse(updated), nil
}

// ReviewQRLink returns a short-lived download link for the stored QR image.
// Any member of the organization may fetch it.
func (s *Service) ReviewQRLink(ctx context.Context, actor httpkit.Identity) (transport.ReviewQRResponse, error) {
	if s.storage == nil {
		return transport.ReviewQRResponse{}, apperr.Internal("object storage is not configured")
	}

	org, err := s.repo.GetByID(ctx, actor.OrgID())
	if errors.Is(err, repository.ErrNotFound) {
		return transport.ReviewQRResponse{}, apperr.NotFound("organization not found")
	}
	if err != nil {
		return transport.ReviewQRResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load organization", err)
	}
	if org.ReviewQRKey == nil {
		return transport.ReviewQRResponse{}, apperr.NotFound("no review QR has been generated")
	}

	presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, *org.ReviewQRKey)
	if err != nil {
		return transport.ReviewQRResponse{}, apperr.Wrap(apperr.KindInternal, "failed to presign QR link", err)
	}

	return transport.ReviewQRResponse{URL: presigned.URL, ExpiresAt: presigned.ExpiresAt}, nil
}

func (s *Service) requireManager(actor httpkit.Identity) error {
	role, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return apperr.Forbidden("unknown actor role")
	}
	if !rbac.AtLeast(role, rbac.RoleManager) {
		return apperr.Forbidden("insufficient role for this action")
	}
	return nil
}
