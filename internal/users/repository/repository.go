// Package repository persists user accounts and their roles.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// User is a member of an organization with a single role.
type User struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const userColumns = `id, organization_id, name, email, role, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.OrganizationID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by ID without a tenant filter. The service layer
// applies the tenant boundary, since super_admin is exempt from it.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
}

const listByOrganizationQuery = `
	SELECT id, organization_id, name, email, role, created_at, updated_at
	FROM users
	WHERE organization_id = $1
	ORDER BY name`

// ListByOrganization lists the organization's members alphabetically.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]User, error) {
	rows, err := r.pool.Query(ctx, listByOrganizationQuery, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const listAllQuery = `
	SELECT id, organization_id, name, email, role, created_at, updated_at
	FROM users
	ORDER BY organization_id, name`

// ListAll lists every user across organizations. Reserved for super_admin,
// which is exempt from the tenant boundary.
func (r *Repository) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, listAllQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateRole sets a user's role.
func (r *Repository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET role = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns,
		role, id,
	))
}
