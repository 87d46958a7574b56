package reservation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type CancelReservation struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewCancelReservation(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
) *CancelReservation {
	return &CancelReservation{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute cancels a pending or confirmed reservation. Canceling twice is a no-op
// and does not notify again.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
) (res *models.Reservation, err error) {

	ctx, span := tracer.Start(ctx, "reservation.cancel")
	span.SetAttributes(attribute.String("reservation.id", id.String()))
	defer func() { finishSpan(span, err) }()

	var changed bool

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.LockReservation(ctx, id)
		if err != nil {
			return notFoundAs(err, "reservation_not_found")
		}
		if !p.CanAccess(r.UserID) {
			return httperr.ErrForbidden("not_reservation_owner")
		}

		if changed, err = domain.Cancel(r); err != nil || !changed {
			return err
		}

		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}
		if r.Payment != nil {
			if err := tx.SavePayment(ctx, r.Payment); err != nil {
				return fmt.Errorf("save payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, err = uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		uc.notifier.SendCancellation(*res)

		uc.audit.Dispatch(audit.Event{
			UserID:   &p.UserID,
			Action:   "reservation_canceled",
			Entity:   "reservation",
			EntityID: &res.ID,
		})
	}

	return res, nil
}
