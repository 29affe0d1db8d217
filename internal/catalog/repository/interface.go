package repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for catalog persistence operations.
type Repository interface {
	CreateCategory(ctx context.Context, organizationID uuid.UUID, name string) (Category, error)
	ListCategories(ctx context.Context, organizationID uuid.UUID) ([]Category, error)
	GetCategoryByID(ctx context.Context, organizationID, id uuid.UUID) (Category, error)
	DeleteCategory(ctx context.Context, organizationID, id uuid.UUID) error

	CreateModel(ctx context.Context, organizationID, categoryID uuid.UUID, name string) (Model, error)
	ListModels(ctx context.Context, organizationID uuid.UUID, categoryID *uuid.UUID) ([]Model, error)
	DeleteModel(ctx context.Context, organizationID, id uuid.UUID) error
}
