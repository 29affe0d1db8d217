// Package repository persists organization profiles.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("organization not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Organization is a tenant: one showroom or retail business.
type Organization struct {
	ID              uuid.UUID
	Name            string
	GoogleReviewURL *string
	ReviewQRKey     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const orgColumns = `id, name, google_review_url, review_qr_key, created_at, updated_at`

func scanOrganization(row pgx.Row) (Organization, error) {
	var o Organization
	err := row.Scan(&o.ID, &o.Name, &o.GoogleReviewURL, &o.ReviewQRKey, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Organization{}, ErrNotFound
	}
	return o, err
}

// GetByID fetches an organization.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Organization, error) {
	return scanOrganization(r.pool.QueryRow(ctx, `
		SELECT `+orgColumns+` FROM organizations WHERE id = $1
	`, id))
}

// UpdateProfile updates the organization's name and Google review URL.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, name string, googleReviewURL *string) (Organization, error) {
	return scanOrganization(r.pool.QueryRow(ctx, `
		UPDATE organizations
		SET name = $1, google_review_url = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+orgColumns,
		name, googleReviewURL, id,
	))
}

// SetReviewQRKey records the storage key of the generated review QR image.
func (r *Repository) SetReviewQRKey(ctx context.Context, id uuid.UUID, fileKey string) (Organization, error) {
	return scanOrganization(r.pool.QueryRow(ctx, `
		UPDATE organizations
		SET review_qr_key = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+orgColumns,
		fileKey, id,
	))
}
