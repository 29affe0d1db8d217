// Package transport defines the HTTP shapes for the auth module.
package transport

import "time"

// SignInRequest authenticates a user by email and password.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest exchanges a refresh token for a fresh token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignOutRequest revokes a refresh token.
type SignOutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse carries a freshly issued token pair.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ProfileResponse describes the authenticated user.
type ProfileResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}
