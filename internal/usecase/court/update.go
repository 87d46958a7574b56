package court

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type UpdateCourt struct {
	repo  domain.Repository
	cache Cache
	audit Auditor
}

func NewUpdateCourt(repo domain.Repository, cache Cache, audit Auditor) *UpdateCourt {
	return &UpdateCourt{repo: repo, cache: cache, audit: audit}
}

// Execute applies the patch; a new price replaces the active one in the same transaction.
func (uc *UpdateCourt) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	id uuid.UUID,
	patch domain.Patch,
) (*models.Court, error) {

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		c, err := tx.Lock(ctx, id)
		if err != nil {
			return notFoundAs(err, "court_not_found")
		}

		patch.Apply(c)
		if err := tx.Save(ctx, c); err != nil {
			return err
		}

		if patch.Price != nil {
			return tx.ReplaceActivePrice(ctx, c.ID, &models.CourtPrice{
				PricePerHour: patch.Price.PricePerHour.Round(2),
				Currency:     patch.Price.Currency,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, id)
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "court_updated",
		Entity:   "court",
		EntityID: &id,
		Metadata: map[string]any{"price_changed": patch.Price != nil},
	})

	return uc.repo.Get(ctx, id)
}
