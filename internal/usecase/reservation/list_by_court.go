package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ListCourtReservations struct {
	repo domain.Repository
}

func NewListCourtReservations(repo domain.Repository) *ListCourtReservations {
	return &ListCourtReservations{repo: repo}
}

// Execute returns the court's occupied slots, optionally those ending after from.
func (uc *ListCourtReservations) Execute(
	ctx context.Context,
	courtID uuid.UUID,
	from *time.Time,
) ([]models.Reservation, error) {

	if _, err := uc.repo.GetCourt(ctx, courtID); err != nil {
		return nil, notFoundAs(err, "court_not_found")
	}

	return uc.repo.ListReservations(ctx, domain.ListFilter{
		CourtID:    &courtID,
		ActiveOnly: true,
		From:       from,
	})
}
