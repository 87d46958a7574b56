package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type MarkReservationPaid struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewMarkReservationPaid(
	repo domain.Repository,
	audit Auditor,
) *MarkReservationPaid {
	return &MarkReservationPaid{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *MarkReservationPaid) Execute(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
) (*models.Reservation, error) {

	if !p.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	var changed bool

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.LockReservation(ctx, id)
		if err != nil {
			return notFoundAs(err, "reservation_not_found")
		}
		if r.Payment == nil {
			return httperr.ErrState("payment_missing")
		}

		if changed, err = domain.MarkPaid(r, uc.now()); err != nil || !changed {
			return err
		}
		return tx.SavePayment(ctx, r.Payment)
	})
	if err != nil {
		return nil, err
	}

	res, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		uc.audit.Dispatch(audit.Event{
			UserID:   &p.UserID,
			Action:   "payment_paid",
			Entity:   "reservation",
			EntityID: &res.ID,
		})
	}

	return res, nil
}
