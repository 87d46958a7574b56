package auth

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

// Principal identifies the caller of a use case.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanAccess is true for admins and for the owner of the resource.
func (p Principal) CanAccess(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
