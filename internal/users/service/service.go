// Package service implements user administration: member listings and role
// changes under the management and tenancy rules.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/internal/users/repository"
	"leadtrack_backend/internal/users/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

// Service orchestrates user administration.
type Service struct {
	repo      repository.UserRepository
	validator *validator.Validator
}

// NewService creates a users service.
func NewService(repo repository.UserRepository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// List returns the members of the actor's organization. Requires manager or
// above, the same capability that guards org-wide lead listings. A
// super_admin sees members of every organization.
func (s *Service) List(ctx context.Context, actor httpkit.Identity) ([]transport.UserResponse, error) {
	actorRole, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return nil, apperr.Forbidden("unknown actor role")
	}
	if !rbac.CanViewOrgLeads(actorRole) {
		return nil, apperr.Forbidden("role may not list organization members")
	}

	var users []repository.User
	if actorRole == rbac.RoleSuperAdmin {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.ListByOrganization(ctx, actor.OrgID())
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}

	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, transport.ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole changes a user's role. Three gates apply, in order: the target
// must lie within the actor's tenant boundary (a miss is reported as not
// found, indistinguishable from a nonexistent user), the actor must outrank
// the target, and the actor must be allowed to grant the new role. All three
// are evaluated against freshly read data, never against claims cached in
// the actor's token.
func (s *Service) UpdateRole(ctx context.Context, actor httpkit.Identity, targetID uuid.UUID, req transport.UpdateRoleRequest) (transport.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindValidation, "invalid role payload", err)
	}

	actorRole, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return transport.UserResponse{}, apperr.Forbidden("unknown actor role")
	}
	newRole, err := rbac.ParseRole(req.Role)
	if err != nil {
		return transport.UserResponse{}, apperr.Validation("role is not a recognized role name")
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.UserResponse{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}

	if !rbac.WithinTenantBoundary(actorRole, actor.OrgID(), target.OrganizationID) {
		return transport.UserResponse{}, apperr.NotFound("user not found")
	}

	targetRole, err := rbac.ParseRole(target.Role)
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "user has an unrecognized role", err)
	}
	if !rbac.CanManage(actorRole, targetRole) {
		return transport.UserResponse{}, apperr.Forbidden("actor does not outrank the target user")
	}
	if !rbac.CanGrantRole(actorRole, newRole) {
		return transport.UserResponse{}, apperr.Forbidden("actor may not grant this role")
	}

	updated, err := s.repo.UpdateRole(ctx, target.ID, newRole.String())
	if err != nil {
		return transport.UserResponse{}, apperr.Wrap(apperr.KindInternal, "failed to update role", err)
	}
	return transport.ToUserResponse(updated), nil
}
