package repository

import (
	"context"

	"github.com/google/uuid"
)

// OrganizationRepository defines the interface for organization persistence.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, googleReviewURL *string) (Organization, error)
	SetReviewQRKey(ctx context.Context, id uuid.UUID, fileKey string) (Organization, error)
}

// Ensure Repository implements OrganizationRepository
var _ OrganizationRepository = (*Repository)(nil)
