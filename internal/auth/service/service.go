// Package service implements authentication: credential checks, access token
// issuance, and refresh token rotation.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadtrack_backend/internal/auth/password"
	"leadtrack_backend/internal/auth/repository"
	"leadtrack_backend/internal/auth/token"
	"leadtrack_backend/internal/auth/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/config"
)

const accessTokenType = "access"

// Service orchestrates authentication flows.
type Service struct {
	repo repository.AuthRepository
	cfg  config.AuthServiceConfig
}

// New creates an auth service.
func New(repo repository.AuthRepository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// SignIn verifies credentials and issues a token pair. A missing account and
// a wrong password produce the same error.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (transport.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. The access token claims are rebuilt from the user record,
// so a role change takes effect on the next refresh at the latest.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (transport.AuthResponse, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return transport.AuthResponse{}, apperr.Unauthorized("refresh token expired")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.AuthResponse{}, apperr.Unauthorized("invalid refresh token")
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "failed to rotate refresh token", err)
	}
	return s.issueTokens(ctx, user)
}

// SignOut revokes the presented refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken)); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to revoke refresh token", err)
	}
	return nil
}

// GetMe returns the authenticated user's profile.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.ProfileResponse{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return transport.ProfileResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load profile", err)
	}

	return transport.ProfileResponse{
		ID:             user.ID.String(),
		OrganizationID: user.OrganizationID.String(),
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (transport.AuthResponse, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "failed to sign access token", err)
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "failed to generate refresh token", err)
	}

	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, token.HashSHA256(refreshToken), expiresAt); err != nil {
		return transport.AuthResponse{}, apperr.Wrap(apperr.KindInternal, "failed to store refresh token", err)
	}

	return transport.AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"type":   accessTokenType,
		"role":   user.Role,
		"org_id": user.OrganizationID.String(),
		"exp":    now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":    now.Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
