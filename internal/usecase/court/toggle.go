package court

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ToggleCourt struct {
	repo  domain.Repository
	cache Cache
	audit Auditor
}

func NewToggleCourt(repo domain.Repository, cache Cache, audit Auditor) *ToggleCourt {
	return &ToggleCourt{repo: repo, cache: cache, audit: audit}
}

// Execute flips is_active. Existing reservations are left untouched.
func (uc *ToggleCourt) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
) (*models.Court, error) {

	var active bool

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		c, err := tx.Lock(ctx, id)
		if err != nil {
			return notFoundAs(err, "court_not_found")
		}
		c.IsActive = !c.IsActive
		active = c.IsActive
		return tx.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, id)
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "court_toggled",
		Entity:   "court",
		EntityID: &id,
		Metadata: map[string]any{"is_active": active},
	})

	return uc.repo.Get(ctx, id)
}
