// Package rbac encodes the role hierarchy and organization-boundary rules.
// Everything here is a pure decision function over role and organization
// identifiers; privileged operations compose these checks and re-evaluate
// them against freshly read data at commit time.
package rbac

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is an ordered role. Higher values hold strictly more privilege.
type Role int

const (
	RoleSalesRep Role = iota
	RoleStaff
	RoleManager
	RoleSuperAdmin
)

const (
	roleNameSalesRep   = "sales_rep"
	roleNameStaff      = "staff"
	roleNameManager    = "manager"
	roleNameSuperAdmin = "super_admin"
)

var roleNames = map[Role]string{
	RoleSalesRep:   roleNameSalesRep,
	RoleStaff:      roleNameStaff,
	RoleManager:    roleNameManager,
	RoleSuperAdmin: roleNameSuperAdmin,
}

var rolesByName = map[string]Role{
	roleNameSalesRep:   RoleSalesRep,
	roleNameStaff:      RoleStaff,
	roleNameManager:    RoleManager,
	roleNameSuperAdmin: RoleSuperAdmin,
}

// String returns the wire name of the role.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Rank returns the ordinal privilege of the role.
func (r Role) Rank() int { return int(r) }

// IsKnown reports whether r is one of the four defined roles.
func (r Role) IsKnown() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole resolves a wire name to a Role.
func ParseRole(name string) (Role, error) {
	role, ok := rolesByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown role %q", name)
	}
	return role, nil
}

// RoleNames lists the valid wire names, highest privilege first.
func RoleNames() []string {
	return []string{roleNameSuperAdmin, roleNameManager, roleNameStaff, roleNameSalesRep}
}

// CanManage reports whether the actor may manage the target: management
// requires strictly greater rank, so a peer never manages a peer.
func CanManage(actor, target Role) bool {
	return actor.Rank() > target.Rank()
}

// CanGrantRole reports whether the actor may set a user's role to newRole.
// A manager is forbidden from granting manager or super_admin even though
// the rank comparison in CanManage alone would not forbid it. The rule is
// kept separate from the ordinal comparison so the exception stays auditable.
func CanGrantRole(actor, newRole Role) bool {
	if actor == RoleManager && (newRole == RoleManager || newRole == RoleSuperAdmin) {
		return false
	}
	return true
}

// SameTenant reports whether two organization identifiers match.
func SameTenant(actorOrg, subjectOrg uuid.UUID) bool {
	return actorOrg == subjectOrg
}

// WithinTenantBoundary reports whether the actor may touch a subject in the
// given organization. super_admin is exempt from the tenant boundary; every
// other role must be in the subject's organization.
func WithinTenantBoundary(actor Role, actorOrg, subjectOrg uuid.UUID) bool {
	if actor == RoleSuperAdmin {
		return true
	}
	return SameTenant(actorOrg, subjectOrg)
}

// CanViewOrgLeads reports whether the role may view organization-wide lead
// listings. This capability is distinct from CanManage: staff and sales_rep
// are never granted it.
func CanViewOrgLeads(r Role) bool {
	return r == RoleManager || r == RoleSuperAdmin
}

// AtLeast reports whether r holds at least the privilege of floor.
func AtLeast(r, floor Role) bool {
	return r.Rank() >= floor.Rank()
}
