// Package transport defines the HTTP shapes for the organization module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/organization/repository"
)

// UpdateProfileRequest updates the organization profile.
type UpdateProfileRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=120"`
	GoogleReviewURL *string `json:"googleReviewUrl" validate:"omitempty,url,max=500"`
}

// OrganizationResponse is the wire representation of an organization.
type OrganizationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	GoogleReviewURL *string   `json:"googleReviewUrl,omitempty"`
	HasReviewQR     bool      `json:"hasReviewQr"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ReviewQRResponse carries a short-lived link to the review QR image.
type ReviewQRResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToOrganizationResponse converts an organization to its wire shape.
func ToOrganizationResponse(o repository.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:              o.ID,
		Name:            o.Name,
		GoogleReviewURL: o.GoogleReviewURL,
		HasReviewQR:     o.ReviewQRKey != nil,
		CreatedAt:       o.CreatedAt,
	}
}
