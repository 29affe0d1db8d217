// Package transport defines the HTTP shapes for the catalog module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/catalog/repository"
)

// CreateCategoryRequest creates a product category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=80"`
}

// CreateModelRequest creates a model under a category.
type CreateModelRequest struct {
	CategoryID string `json:"categoryId" validate:"required,uuid"`
	Name       string `json:"name" validate:"required,min=1,max=80"`
}

// CategoryResponse is the wire representation of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ModelResponse is the wire representation of a model.
type ModelResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCategoryResponse converts a category to its wire shape.
func ToCategoryResponse(c repository.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// ToModelResponse converts a model to its wire shape.
func ToModelResponse(m repository.Model) ModelResponse {
	return ModelResponse{ID: m.ID, CategoryID: m.CategoryID, Name: m.Name, CreatedAt: m.CreatedAt}
}
