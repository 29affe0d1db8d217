package repository

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]User, error)
	ListAll(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (User, error)
}

// Ensure Repository implements UserRepository
var _ UserRepository = (*Repository)(nil)
