// Package repository persists the product catalog: categories and the
// models that belong to them. Everything is tenant-scoped.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadtrack_backend/platform/apperr"
)

const (
	categoryNotFoundMessage = "category not found"
	modelNotFoundMessage    = "model not found"
)

const pgUniqueViolation = "23505"

// Category is a product category (e.g. "Sofa", "Dining Table").
type Category struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Model is a product model within a category.
type Model struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateCategory creates a category. Names are unique per organization.
func (r *Repo) CreateCategory(ctx context.Context, organizationID uuid.UUID, name string) (Category, error) {
	query := `
		INSERT INTO categories (organization_id, name)
		VALUES ($1, $2)
		RETURNING id, organization_id, name, created_at, updated_at`

	var cat Category
	if err := r.pool.QueryRow(ctx, query, organizationID, name).Scan(
		&cat.ID, &cat.OrganizationID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Category{}, apperr.Conflict("category name already exists")
		}
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// ListCategories lists the organization's categories alphabetically.
func (r *Repo) ListCategories(ctx context.Context, organizationID uuid.UUID) ([]Category, error) {
	query := `
		SELECT id, organization_id, name, created_at, updated_at
		FROM categories
		WHERE organization_id = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.OrganizationID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// GetCategoryByID retrieves a category within the organization.
func (r *Repo) GetCategoryByID(ctx context.Context, organizationID, id uuid.UUID) (Category, error) {
	query := `
		SELECT id, organization_id, name, created_at, updated_at
		FROM categories
		WHERE id = $1 AND organization_id = $2`

	var cat Category
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&cat.ID, &cat.OrganizationID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category by id: %w", err)
	}
	return cat, nil
}

// DeleteCategory deletes a category. Leads referencing it are left
// untouched: their labels resolve to "Unknown" at read time, there is no
// cascade and no tombstone.
func (r *Repo) DeleteCategory(ctx context.Context, organizationID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(categoryNotFoundMessage)
	}
	return nil
}

// CreateModel creates a model under a category of the same organization.
func (r *Repo) CreateModel(ctx context.Context, organizationID, categoryID uuid.UUID, name string) (Model, error) {
	query := `
		INSERT INTO models (organization_id, category_id, name)
		SELECT $1, c.id, $3
		FROM categories c
		WHERE c.id = $2 AND c.organization_id = $1
		RETURNING id, organization_id, category_id, name, created_at, updated_at`

	var m Model
	if err := r.pool.QueryRow(ctx, query, organizationID, categoryID, name).Scan(
		&m.ID, &m.OrganizationID, &m.CategoryID, &m.Name, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Model{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Model{}, fmt.Errorf("create model: %w", err)
	}
	return m, nil
}

// ListModels lists models, optionally filtered by category.
func (r *Repo) ListModels(ctx context.Context, organizationID uuid.UUID, categoryID *uuid.UUID) ([]Model, error) {
	query := `
		SELECT id, organization_id, category_id, name, created_at, updated_at
		FROM models
		WHERE organization_id = $1 AND ($2::uuid IS NULL OR category_id = $2)
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, organizationID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		var m Model
		if err := rows.Scan(&m.ID, &m.OrganizationID, &m.CategoryID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// DeleteModel deletes a model. Same no-cascade rule as categories.
func (r *Repo) DeleteModel(ctx context.Context, organizationID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM models WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(modelNotFoundMessage)
	}
	return nil
}
