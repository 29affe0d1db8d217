package rbac

import (
	"testing"

	"github.com/google/uuid"
)

var allRoles = []Role{RoleSalesRep, RoleStaff, RoleManager, RoleSuperAdmin}

func TestCanManageIsStrictRankComparison(t *testing.T) {
	for _, actor := range allRoles {
		for _, target := range allRoles {
			want := actor.Rank() > target.Rank()
			if got := CanManage(actor, target); got != want {
				t.Errorf("CanManage(%s, %s) = %v, want %v", actor, target, got, want)
			}
		}
	}
}

func TestPeersCannotManageEachOther(t *testing.T) {
	for _, role := range allRoles {
		if CanManage(role, role) {
			t.Errorf("CanManage(%s, %s) must be false for peers", role, role)
		}
	}
}

func TestManagerCannotGrantManagerOrSuperAdmin(t *testing.T) {
	if CanGrantRole(RoleManager, RoleManager) {
		t.Error("manager must not grant manager")
	}
	if CanGrantRole(RoleManager, RoleSuperAdmin) {
		t.Error("manager must not grant super_admin")
	}
	if !CanGrantRole(RoleManager, RoleStaff) {
		t.Error("manager should grant staff")
	}
	if !CanGrantRole(RoleManager, RoleSalesRep) {
		t.Error("manager should grant sales_rep")
	}
	if !CanGrantRole(RoleSuperAdmin, RoleManager) {
		t.Error("super_admin should grant manager")
	}
}

func TestWithinTenantBoundary(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	for _, role := range allRoles {
		if !WithinTenantBoundary(role, orgA, orgA) {
			t.Errorf("%s should act within own organization", role)
		}
	}

	for _, role := range []Role{RoleSalesRep, RoleStaff, RoleManager} {
		if WithinTenantBoundary(role, orgA, orgB) {
			t.Errorf("%s must not cross the tenant boundary", role)
		}
	}

	if !WithinTenantBoundary(RoleSuperAdmin, orgA, orgB) {
		t.Error("super_admin is exempt from the tenant boundary")
	}
}

func TestCanViewOrgLeads(t *testing.T) {
	cases := map[Role]bool{
		RoleSalesRep:   false,
		RoleStaff:      false,
		RoleManager:    true,
		RoleSuperAdmin: true,
	}

	for role, want := range cases {
		if got := CanViewOrgLeads(role); got != want {
			t.Errorf("CanViewOrgLeads(%s) = %v, want %v", role, got, want)
		}
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range allRoles {
		parsed, err := ParseRole(role.String())
		if err != nil {
			t.Fatalf("ParseRole(%s): %v", role, err)
		}
		if parsed != role {
			t.Fatalf("ParseRole(%s) = %s", role, parsed)
		}
	}

	if _, err := ParseRole("admin"); err == nil {
		t.Fatal("ParseRole should reject unknown role names")
	}
}
