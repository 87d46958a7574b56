package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/middleware"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

type WelcomeSender interface {
	SendWelcome(u models.User)
}

func auditEvent(actorID uuid.UUID, action, entity string, entityID uuid.UUID, meta any) audit.Event {
	return audit.Event{
		UserID:   &actorID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	}
}

// principal writes a 401 and returns false when the middleware did not run.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
	}
	return p, ok
}

// pathID writes a 400 and returns false for a malformed UUID.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
