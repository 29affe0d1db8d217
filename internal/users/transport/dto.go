// Package transport defines the HTTP shapes for the users module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/users/repository"
)

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,max=40"`
}

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a user to its wire shape.
func ToUserResponse(u repository.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
