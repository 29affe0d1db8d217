package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/internal/users/repository"
	"leadtrack_backend/internal/users/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/validator"
)

type fakeRepo struct {
	users map[uuid.UUID]repository.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]repository.User)}
}

func (f *fakeRepo) add(orgID uuid.UUID, role rbac.Role) repository.User {
	u := repository.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           "Member",
		Email:          uuid.NewString() + "@example.com",
		Role:           role.String(),
		CreatedAt:      time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListByOrganization(_ context.Context, orgID uuid.UUID) ([]repository.User, error) {
	var out []repository.User
	for _, u := range f.users {
		if u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]repository.User, error) {
	var out []repository.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	u.Role = role
	f.users[id] = u
	return u, nil
}

func newTestService(repo repository.UserRepository) *Service {
	return NewService(repo, validator.New())
}

func roleReq(r rbac.Role) transport.UpdateRoleRequest {
	return transport.UpdateRoleRequest{Role: r.String()}
}

func TestUpdateRoleRequiresStrictOutrank(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	orgID := uuid.New()

	manager := repo.add(orgID, rbac.RoleManager)
	peer := repo.add(orgID, rbac.RoleManager)
	actor := httpkit.NewIdentity(manager.ID, rbac.RoleManager.String(), orgID)

	_, err := svc.UpdateRole(context.Background(), actor, peer.ID, roleReq(rbac.RoleStaff))
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("peer must not manage peer, got %v", err)
	}
}

func TestManagerMayNotGrantManagerOrAbove(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	orgID := uuid.New()

	manager := repo.add(orgID, rbac.RoleManager)
	staff := repo.add(orgID, rbac.RoleStaff)
	actor := httpkit.NewIdentity(manager.ID, rbac.RoleManager.String(), orgID)

	for _, granted := range []rbac.Role{rbac.RoleManager, rbac.RoleSuperAdmin} {
		_, err := svc.UpdateRole(context.Background(), actor, staff.ID, roleReq(granted))
		if !apperr.Is(err, apperr.KindForbidden) {
			t.Errorf("manager granting %s: expected forbidden, got %v", granted, err)
		}
	}

	// Managing downward within the allowed grants still works.
	updated, err := svc.UpdateRole(context.Background(), actor, staff.ID, roleReq(rbac.RoleSalesRep))
	if err != nil {
		t.Fatalf("manager demoting staff error = %v", err)
	}
	if updated.Role != rbac.RoleSalesRep.String() {
		t.Errorf("Role = %s, want sales_rep", updated.Role)
	}
}

func TestSuperAdminMayPromoteToManagerAcrossTenants(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	admin := repo.add(uuid.New(), rbac.RoleSuperAdmin)
	staff := repo.add(uuid.New(), rbac.RoleStaff)
	actor := httpkit.NewIdentity(admin.ID, rbac.RoleSuperAdmin.String(), admin.OrganizationID)

	updated, err := svc.UpdateRole(context.Background(), actor, staff.ID, roleReq(rbac.RoleManager))
	if err != nil {
		t.Fatalf("super_admin cross-tenant promotion error = %v", err)
	}
	if updated.Role != rbac.RoleManager.String() {
		t.Errorf("Role = %s, want manager", updated.Role)
	}
}

func TestCrossTenantTargetIsNotFoundForManager(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	manager := repo.add(uuid.New(), rbac.RoleManager)
	foreignStaff := repo.add(uuid.New(), rbac.RoleStaff)
	actor := httpkit.NewIdentity(manager.ID, rbac.RoleManager.String(), manager.OrganizationID)

	_, err := svc.UpdateRole(context.Background(), actor, foreignStaff.ID, roleReq(rbac.RoleSalesRep))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("cross-tenant target must surface as not found, got %v", err)
	}
}

func TestUpdateRoleUnknownRoleNameRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	orgID := uuid.New()

	admin := repo.add(orgID, rbac.RoleSuperAdmin)
	staff := repo.add(orgID, rbac.RoleStaff)
	actor := httpkit.NewIdentity(admin.ID, rbac.RoleSuperAdmin.String(), orgID)

	_, err := svc.UpdateRole(context.Background(), actor, staff.ID, transport.UpdateRoleRequest{Role: "owner"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}
}

func TestListRequiresManager(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	orgID := uuid.New()
	repo.add(orgID, rbac.RoleStaff)

	staffActor := httpkit.NewIdentity(uuid.New(), rbac.RoleStaff.String(), orgID)
	if _, err := svc.List(context.Background(), staffActor); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("staff listing members: expected forbidden, got %v", err)
	}

	managerActor := httpkit.NewIdentity(uuid.New(), rbac.RoleManager.String(), orgID)
	users, err := svc.List(context.Background(), managerActor)
	if err != nil {
		t.Fatalf("manager listing members error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("listed %d users, want 1", len(users))
	}
}

func TestListSuperAdminSeesAllOrganizations(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	orgA := uuid.New()
	orgB := uuid.New()
	repo.add(orgA, rbac.RoleStaff)
	repo.add(orgB, rbac.RoleStaff)

	managerActor := httpkit.NewIdentity(uuid.New(), rbac.RoleManager.String(), orgA)
	users, err := svc.List(context.Background(), managerActor)
	if err != nil {
		t.Fatalf("manager listing members error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("manager listed %d users, want own org's 1", len(users))
	}

	adminActor := httpkit.NewIdentity(uuid.New(), rbac.RoleSuperAdmin.String(), orgA)
	users, err = svc.List(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("super_admin listing members error = %v", err)
	}
	if len(users) != 2 {
		t.Errorf("super_admin listed %d users, want 2 across organizations", len(users))
	}
}
