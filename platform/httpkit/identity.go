// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated actor's identity: who they are,
// what role they hold, and which organization they act within. Handlers
// access actor information through this interface without depending on Gin,
// and services receive it as an explicitly passed value, never as ambient
// global state.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Role returns the actor's role name.
	Role() string
	// OrgID returns the actor's organization ID.
	OrgID() uuid.UUID
	// IsAuthenticated returns true if the actor is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	role          string
	orgID         uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID { return i.userID }
func (i *identity) Role() string      { return i.role }
func (i *identity) OrgID() uuid.UUID  { return i.orgID }

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// NewIdentity builds an Identity directly. Intended for tests and
// non-HTTP entry points (e.g. the scheduler worker).
func NewIdentity(userID uuid.UUID, role string, orgID uuid.UUID) Identity {
	return &identity{userID: userID, role: role, orgID: orgID, authenticated: true}
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if actor info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	role, _ := c.Get(ContextRoleKey)
	roleName, _ := role.(string)

	orgID, _ := c.Get(ContextOrgIDKey)
	oid, _ := orgID.(uuid.UUID)

	return &identity{
		userID:        uid,
		role:          roleName,
		orgID:         oid,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the actor is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
