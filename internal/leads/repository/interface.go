package repository

import (
	"context"

	"github.com/google/uuid"
)

// LeadRepository defines the interface for lead persistence operations.
// Services depend on this abstraction rather than the pgx implementation,
// which keeps the lifecycle engine testable with in-memory fakes.
type LeadRepository interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	GetByID(ctx context.Context, orgID, leadID uuid.UUID) (Lead, error)
	Categorize(ctx context.Context, params CategorizeParams) (Lead, error)
	RecordWin(ctx context.Context, params RecordWinParams) (Lead, error)
	RecordNotToday(ctx context.Context, params RecordNotTodayParams) (Lead, error)
	AdvanceReview(ctx context.Context, params AdvanceReviewParams) (Lead, error)
	InvoiceExists(ctx context.Context, orgID uuid.UUID, invoiceNo string) (bool, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]LeadWithLabels, error)
}

// Ensure Repository implements LeadRepository
var _ LeadRepository = (*Repository)(nil)
