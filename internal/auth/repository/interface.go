package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthRepository defines the interface for auth persistence operations.
type AuthRepository interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
