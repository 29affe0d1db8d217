package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lead does not exist within the requested
// organization. Cross-tenant lookups surface as ErrNotFound by construction
// because every query is tenant-scoped.
var ErrNotFound = errors.New("lead not found")

// ErrStaleState is returned when a conditional update matched the lead but
// not its expected stage/status/version: another writer committed first.
var ErrStaleState = errors.New("lead state changed")

// ErrDuplicateInvoice is returned when an invoice number is already used
// within the organization.
var ErrDuplicateInvoice = errors.New("invoice number already used")

const pgUniqueViolation = "23505"

// Lead is the persisted lead record.
type Lead struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	CustomerName     string
	CustomerPhone    string
	Stage            string
	CategoryID       *uuid.UUID
	ModelID          *uuid.UUID
	DealSize         *int64
	PurchaseTimeline *string
	SalesRepID       uuid.UUID
	Status           string
	InvoiceNo        *string
	SalePrice        *int64
	ReviewStatus     *string
	ReviewedBy       *uuid.UUID
	NotTodayReason   *string
	OtherReason      *string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LeadWithLabels is a lead joined with display labels resolved at read time.
// Dangling references (e.g. a deleted category) fall back to "Unknown".
type LeadWithLabels struct {
	Lead
	CategoryName string
	ModelName    string
	SalesRepName string
}

// Repository provides tenant-scoped lead persistence over pgx.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `
	id, organization_id, customer_name, customer_phone, stage,
	category_id, model_id, deal_size, purchase_timeline, sales_rep_id,
	status, invoice_no, sale_price, review_status, reviewed_by,
	not_today_reason, other_reason, version, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.OrganizationID, &l.CustomerName, &l.CustomerPhone, &l.Stage,
		&l.CategoryID, &l.ModelID, &l.DealSize, &l.PurchaseTimeline, &l.SalesRepID,
		&l.Status, &l.InvoiceNo, &l.SalePrice, &l.ReviewStatus, &l.ReviewedBy,
		&l.NotTodayReason, &l.OtherReason, &l.Version, &l.CreatedAt, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return l, err
}

// CreateLeadParams holds the fields required to open a new lead.
// The organization is resolved from the acting session, never client input.
type CreateLeadParams struct {
	OrganizationID uuid.UUID
	CustomerName   string
	CustomerPhone  string
	SalesRepID     uuid.UUID
}

// Create inserts a lead in stage "created" with outcome "open".
func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (organization_id, customer_name, customer_phone, stage, sales_rep_id, status)
		VALUES ($1, $2, $3, 'created', $4, 'open')
		RETURNING`+leadColumns,
		params.OrganizationID, params.CustomerName, params.CustomerPhone, params.SalesRepID,
	))
}

// GetByID fetches a lead within the given organization.
func (r *Repository) GetByID(ctx context.Context, orgID, leadID uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT`+leadColumns+`
		FROM leads
		WHERE id = $1 AND organization_id = $2
	`, leadID, orgID))
}

// CategorizeParams attaches a category and deal-size estimate to a lead.
type CategorizeParams struct {
	LeadID           uuid.UUID
	OrganizationID   uuid.UUID
	CategoryID       uuid.UUID
	ModelID          *uuid.UUID
	DealSize         int64
	PurchaseTimeline *string
	ExpectedVersion  int
}

// Categorize moves a lead from "created" to "categorized". The update is
// conditional on the current stage and version; a miss on a lead that still
// exists reports ErrStaleState.
func (r *Repository) Categorize(ctx context.Context, params CategorizeParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads
		SET stage = 'categorized', category_id = $1, model_id = $2, deal_size = $3,
		    purchase_timeline = $4, version = version + 1, updated_at = now()
		WHERE id = $5 AND organization_id = $6 AND stage = 'created' AND version = $7
		RETURNING`+leadColumns,
		params.CategoryID, params.ModelID, params.DealSize, params.PurchaseTimeline,
		params.LeadID, params.OrganizationID, params.ExpectedVersion,
	))
	if errors.Is(err, ErrNotFound) {
		return Lead{}, r.missReason(ctx, params.OrganizationID, params.LeadID)
	}
	return lead, err
}

// RecordWinParams commits a win outcome.
type RecordWinParams struct {
	LeadID          uuid.UUID
	OrganizationID  uuid.UUID
	InvoiceNo       string
	SalePrice       int64
	ExpectedVersion int
}

// RecordWin commits a win outcome and initializes the review sub-machine at
// "pending". The conditional WHERE clause guarantees exactly one of two
// concurrent submissions succeeds; the partial unique index on
// (organization_id, invoice_no) rejects duplicate invoices.
func (r *Repository) RecordWin(ctx context.Context, params RecordWinParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads
		SET stage = 'outcome_recorded', status = 'win', invoice_no = $1, sale_price = $2,
		    review_status = 'pending', version = version + 1, updated_at = now()
		WHERE id = $3 AND organization_id = $4
		  AND stage = 'categorized' AND status = 'open' AND version = $5
		RETURNING`+leadColumns,
		params.InvoiceNo, params.SalePrice,
		params.LeadID, params.OrganizationID, params.ExpectedVersion,
	))
	if err == nil {
		return lead, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return Lead{}, ErrDuplicateInvoice
	}
	if errors.Is(err, ErrNotFound) {
		return Lead{}, r.missReason(ctx, params.OrganizationID, params.LeadID)
	}
	return Lead{}, err
}

// RecordNotTodayParams commits a lost-opportunity outcome.
type RecordNotTodayParams struct {
	LeadID          uuid.UUID
	OrganizationID  uuid.UUID
	Reason          string
	OtherReason     *string
	ExpectedVersion int
}

// RecordNotToday commits a not_today outcome with its reason code.
func (r *Repository) RecordNotToday(ctx context.Context, params RecordNotTodayParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads
		SET stage = 'outcome_recorded', status = 'not_today', not_today_reason = $1,
		    other_reason = $2, version = version + 1, updated_at = now()
		WHERE id = $3 AND organization_id = $4
		  AND stage = 'categorized' AND status = 'open' AND version = $5
		RETURNING`+leadColumns,
		params.Reason, params.OtherReason,
		params.LeadID, params.OrganizationID, params.ExpectedVersion,
	))
	if errors.Is(err, ErrNotFound) {
		return Lead{}, r.missReason(ctx, params.OrganizationID, params.LeadID)
	}
	return lead, err
}

// AdvanceReviewParams moves a won lead's review status one step forward.
type AdvanceReviewParams struct {
	LeadID          uuid.UUID
	OrganizationID  uuid.UUID
	FromStatus      string
	ToStatus        string
	ReviewerID      uuid.UUID
	ExpectedVersion int
}

// AdvanceReview performs the single-step review transition. The reviewer is
// recorded on the first transition away from "pending" and preserved after.
func (r *Repository) AdvanceReview(ctx context.Context, params AdvanceReviewParams) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads
		SET review_status = $1, reviewed_by = COALESCE(reviewed_by, $2),
		    version = version + 1, updated_at = now()
		WHERE id = $3 AND organization_id = $4
		  AND status = 'win' AND review_status = $5 AND version = $6
		RETURNING`+leadColumns,
		params.ToStatus, params.ReviewerID,
		params.LeadID, params.OrganizationID, params.FromStatus, params.ExpectedVersion,
	))
	if errors.Is(err, ErrNotFound) {
		return Lead{}, r.missReason(ctx, params.OrganizationID, params.LeadID)
	}
	return lead, err
}

// InvoiceExists reports whether an invoice number is already recorded in the
// organization. Used as a pre-commit idempotency check; the unique index
// remains the authority under concurrency.
func (r *Repository) InvoiceExists(ctx context.Context, orgID uuid.UUID, invoiceNo string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leads
			WHERE organization_id = $1 AND invoice_no = $2
		)
	`, orgID, invoiceNo).Scan(&exists)
	return exists, err
}

// listByOrganizationQuery resolves display labels at read time. A deleted
// category or model leaves the lead with an "Unknown" label ("N/A" for the
// model of a win recorded without one) rather than cascading deletes.
const listByOrganizationQuery = `
	SELECT
		l.id, l.organization_id, l.customer_name, l.customer_phone, l.stage,
		l.category_id, l.model_id, l.deal_size, l.purchase_timeline, l.sales_rep_id,
		l.status, l.invoice_no, l.sale_price, l.review_status, l.reviewed_by,
		l.not_today_reason, l.other_reason, l.version, l.created_at, l.updated_at,
		COALESCE(c.name, 'Unknown') AS category_name,
		COALESCE(m.name, CASE WHEN l.status = 'win' THEN 'N/A' ELSE 'Unknown' END) AS model_name,
		COALESCE(u.name, 'Unknown') AS sales_rep_name
	FROM leads l
	LEFT JOIN categories c ON c.id = l.category_id
	LEFT JOIN models m ON m.id = l.model_id
	LEFT JOIN users u ON u.id = l.sales_rep_id
	WHERE l.organization_id = $1
	ORDER BY l.created_at DESC`

// ListByOrganization returns every lead of the organization with resolved
// labels, most recent first.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]LeadWithLabels, error) {
	rows, err := r.pool.Query(ctx, listByOrganizationQuery, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []LeadWithLabels
	for rows.Next() {
		var l LeadWithLabels
		if err := rows.Scan(
			&l.ID, &l.OrganizationID, &l.CustomerName, &l.CustomerPhone, &l.Stage,
			&l.CategoryID, &l.ModelID, &l.DealSize, &l.PurchaseTimeline, &l.SalesRepID,
			&l.Status, &l.InvoiceNo, &l.SalePrice, &l.ReviewStatus, &l.ReviewedBy,
			&l.NotTodayReason, &l.OtherReason, &l.Version, &l.CreatedAt, &l.UpdatedAt,
			&l.CategoryName, &l.ModelName, &l.SalesRepName,
		); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}

// missReason distinguishes a conditional-update miss: the lead either does
// not exist in this organization (ErrNotFound) or exists in a different
// state than expected (ErrStaleState).
func (r *Repository) missReason(ctx context.Context, orgID, leadID uuid.UUID) error {
	_, err := r.GetByID(ctx, orgID, leadID)
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrStaleState
}
