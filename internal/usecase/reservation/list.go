package reservation

import (
	"context"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ListReservations struct {
	repo domain.Repository
}

func NewListReservations(repo domain.Repository) *ListReservations {
	return &ListReservations{repo: repo}
}

// Execute scopes non-admin callers to their own reservations, whatever the filter says.
func (uc *ListReservations) Execute(
	ctx context.Context,
	p auth.Principal,
	filter domain.ListFilter,
) ([]models.Reservation, error) {

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, httperr.ErrValidation("invalid_status", "status", "must be pending, confirmed or canceled")
	}

	if !p.IsAdmin() {
		own := p.UserID
		filter.UserID = &own
	}

	return uc.repo.ListReservations(ctx, filter)
}
