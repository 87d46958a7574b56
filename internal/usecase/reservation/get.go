package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type GetReservation struct {
	repo domain.Repository
}

func NewGetReservation(repo domain.Repository) *GetReservation {
	return &GetReservation{repo: repo}
}

func (uc *GetReservation) Execute(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
) (*models.Reservation, error) {

	r, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "reservation_not_found")
	}
	if !p.CanAccess(r.UserID) {
		return nil, httperr.ErrForbidden("not_reservation_owner")
	}
	return r, nil
}
