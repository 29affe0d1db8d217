// Package repository provides read-side queries over leads grouped per
// customer. A customer is not a stored entity: it is derived by grouping an
// organization's leads on the canonical phone number.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoHistory is returned when no leads exist for the phone number within
// the organization.
var ErrNoHistory = errors.New("no customer history")

// CustomerStats is the aggregate view of one customer's history.
type CustomerStats struct {
	Phone         string
	DisplayName   string
	LeadCount     int
	WinCount      int
	LostCount     int
	TotalValue    int64
	PipelineValue int64
	FirstVisit    time.Time
	LatestVisit   time.Time
}

// TimelineEntry is one visit in a customer's history, newest first.
type TimelineEntry struct {
	LeadID         uuid.UUID
	CustomerName   string
	Stage          string
	Status         string
	CategoryName   string
	ModelName      string
	SalesRepName   string
	DealSize       *int64
	SalePrice      *int64
	InvoiceNo      *string
	NotTodayReason *string
	OtherReason    *string
	ReviewStatus   *string
	CreatedAt      time.Time
}

// Repository provides customer aggregation queries over pgx.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new customer repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// statsSelect derives the aggregate columns for a customer group. The
// display name is the most recent non-empty customer name; totalValue sums
// win sale prices while pipelineValue sums the deal sizes of lost visits.
const statsSelect = `
	SELECT
		customer_phone,
		COALESCE((ARRAY_AGG(customer_name ORDER BY created_at DESC) FILTER (WHERE customer_name <> ''))[1], '') AS display_name,
		COUNT(*) AS lead_count,
		COUNT(*) FILTER (WHERE status = 'win') AS win_count,
		COUNT(*) FILTER (WHERE status = 'not_today') AS lost_count,
		COALESCE(SUM(sale_price) FILTER (WHERE status = 'win'), 0) AS total_value,
		COALESCE(SUM(deal_size) FILTER (WHERE status = 'not_today'), 0) AS pipeline_value,
		MIN(created_at) AS first_visit,
		MAX(created_at) AS latest_visit
	FROM leads`

const customerStatsQuery = statsSelect + `
	WHERE organization_id = $1 AND customer_phone = $2
	GROUP BY customer_phone`

const listCustomersQuery = statsSelect + `
	WHERE organization_id = $1
	GROUP BY customer_phone
	ORDER BY MAX(created_at) DESC`

func scanStats(row pgx.Row) (CustomerStats, error) {
	var s CustomerStats
	err := row.Scan(
		&s.Phone, &s.DisplayName, &s.LeadCount, &s.WinCount, &s.LostCount,
		&s.TotalValue, &s.PipelineValue, &s.FirstVisit, &s.LatestVisit,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return CustomerStats{}, ErrNoHistory
	}
	return s, err
}

// Stats returns the aggregate view of one customer within the organization.
func (r *Repository) Stats(ctx context.Context, orgID uuid.UUID, phone string) (CustomerStats, error) {
	return scanStats(r.pool.QueryRow(ctx, customerStatsQuery, orgID, phone))
}

// List returns every customer of the organization, most recently visited
// first.
func (r *Repository) List(ctx context.Context, orgID uuid.UUID) ([]CustomerStats, error) {
	rows, err := r.pool.Query(ctx, listCustomersQuery, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []CustomerStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return customers, nil
}

// timelineQuery resolves display labels the same way the lead listing does:
// dangling references fall back to "Unknown" rather than dropping the row.
const timelineQuery = `
	SELECT
		l.id, l.customer_name, l.stage, l.status,
		COALESCE(c.name, 'Unknown') AS category_name,
		COALESCE(m.name, CASE WHEN l.status = 'win' THEN 'N/A' ELSE 'Unknown' END) AS model_name,
		COALESCE(u.name, 'Unknown') AS sales_rep_name,
		l.deal_size, l.sale_price, l.invoice_no,
		l.not_today_reason, l.other_reason, l.review_status, l.created_at
	FROM leads l
	LEFT JOIN categories c ON c.id = l.category_id
	LEFT JOIN models m ON m.id = l.model_id
	LEFT JOIN users u ON u.id = l.sales_rep_id
	WHERE l.organization_id = $1 AND l.customer_phone = $2
	ORDER BY l.created_at DESC`

// Timeline returns the customer's visits, newest first.
func (r *Repository) Timeline(ctx context.Context, orgID uuid.UUID, phone string) ([]TimelineEntry, error) {
	rows, err := r.pool.Query(ctx, timelineQuery, orgID, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TimelineEntry
	for rows.Next() {
		var e TimelineEntry
		if err := rows.Scan(
			&e.LeadID, &e.CustomerName, &e.Stage, &e.Status,
			&e.CategoryName, &e.ModelName, &e.SalesRepName,
			&e.DealSize, &e.SalePrice, &e.InvoiceNo,
			&e.NotTodayReason, &e.OtherReason, &e.ReviewStatus, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return entries, nil
}
