// Package service implements catalog management: categories and models that
// leads are categorized against.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadtrack_backend/internal/catalog/repository"
	"leadtrack_backend/internal/catalog/transport"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

// Service orchestrates catalog operations.
type Service struct {
	repo      repository.Repository
	validator *validator.Validator
}

// NewService creates a catalog service.
func NewService(repo repository.Repository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// ListCategories returns the organization's categories.
func (s *Service) ListCategories(ctx context.Context, actor httpkit.Identity) ([]transport.CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx, actor.OrgID())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list categories", err)
	}

	out := make([]transport.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, transport.ToCategoryResponse(c))
	}
	return out, nil
}

// CreateCategory creates a category. Requires manager or above.
func (s *Service) CreateCategory(ctx context.Context, actor httpkit.Identity, req transport.CreateCategoryRequest) (transport.CategoryResponse, error) {
	if err := s.requireRole(actor, rbac.RoleManager); err != nil {
		return transport.CategoryResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return transport.CategoryResponse{}, apperr.Wrap(apperr.KindValidation, "invalid category payload", err)
	}

	cat, err := s.repo.CreateCategory(ctx, actor.OrgID(), strings.TrimSpace(req.Name))
	if err != nil {
		return transport.CategoryResponse{}, s.passOrInternal(err, "failed to create category")
	}
	return transport.ToCategoryResponse(cat), nil
}

// DeleteCategory deletes a category. Only super_admin may delete, and only
// within its own organization: the tenant-scoped repository lookup makes a
// category of another organization indistinguishable from a missing one.
// Historical leads keep their category reference; their labels resolve to
// "Unknown" at read time.
func (s *Service) DeleteCategory(ctx context.Context, actor httpkit.Identity, categoryID uuid.UUID) error {
	if err := s.requireRole(actor, rbac.RoleSuperAdmin); err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, actor.OrgID(), categoryID); err != nil {
		return s.passOrInternal(err, "failed to delete category")
	}
	return nil
}

// ListModels returns the organization's models, optionally per category.
func (s *Service) ListModels(ctx context.Context, actor httpkit.Identity, categoryID *uuid.UUID) ([]transport.ModelResponse, error) {
	models, err := s.repo.ListModels(ctx, actor.OrgID(), categoryID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list models", err)
	}

	out := make([]transport.ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, transport.ToModelResponse(m))
	}
	return out, nil
}

// CreateModel creates a model under a category. Requires manager or above.
func (s *Service) CreateModel(ctx context.Context, actor httpkit.Identity, req transport.CreateModelRequest) (transport.ModelResponse, error) {
	if err := s.requireRole(actor, rbac.RoleManager); err != nil {
		return transport.ModelResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return transport.ModelResponse{}, apperr.Wrap(apperr.KindValidation, "invalid model payload", err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return transport.ModelResponse{}, apperr.Validation("categoryId is not a valid identifier")
	}

	m, err := s.repo.CreateModel(ctx, actor.OrgID(), categoryID, strings.TrimSpace(req.Name))
	if err != nil {
		return transport.ModelResponse{}, s.passOrInternal(err, "failed to create model")
	}
	return transport.ToModelResponse(m), nil
}

// DeleteModel deletes a model. Requires manager or above; the no-cascade
// rule applies the same as for categories.
func (s *Service) DeleteModel(ctx context.Context, actor httpkit.Identity, modelID uuid.UUID) error {
	if err := s.requireRole(actor, rbac.RoleManager); err != nil {
		return err
	}

	if err := s.repo.DeleteModel(ctx, actor.OrgID(), modelID); err != nil {
		return s.passOrInternal(err, "failed to delete model")
	}
	return nil
}

func (s *Service) requireRole(actor httpkit.Identity, floor rbac.Role) error {
	role, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return apperr.Forbidden("unknown actor role")
	}
	if floor == rbac.RoleSuperAdmin && role != rbac.RoleSuperAdmin {
		return apperr.Forbidden("only super_admin may perform this action")
	}
	if !rbac.AtLeast(role, floor) {
		return apperr.Forbidden("insufficient role for this action")
	}
	return nil
}

func (s *Service) passOrInternal(err error, message string) error {
	if _, ok := err.(*apperr.Error); ok {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, message, err)
}
