package repository

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer aggregation queries.
type CustomerRepository interface {
	Stats(ctx context.Context, orgID uuid.UUID, phone string) (CustomerStats, error)
	List(ctx context.Context, orgID uuid.UUID) ([]CustomerStats, error)
	Timeline(ctx context.Context, orgID uuid.UUID, phone string) ([]TimelineEntry, error)
}

// Ensure Repository implements CustomerRepository
var _ CustomerRepository = (*Repository)(nil)
