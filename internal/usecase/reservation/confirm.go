package reservation

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ConfirmReservation struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewConfirmReservation(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
) *ConfirmReservation {
	return &ConfirmReservation{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute is admin only. Confirming a canceled reservation is rejected.
func (uc *ConfirmReservation) Execute(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
) (res *models.Reservation, err error) {

	ctx, span := tracer.Start(ctx, "reservation.confirm")
	span.SetAttributes(attribute.String("reservation.id", id.String()))
	defer func() { finishSpan(span, err) }()

	if !p.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	var changed bool

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.LockReservation(ctx, id)
		if err != nil {
			return notFoundAs(err, "reservation_not_found")
		}

		if changed, err = domain.Confirm(r); err != nil || !changed {
			return err
		}
		return tx.SaveReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	res, err = uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		uc.notifier.SendConfirmation(*res)

		uc.audit.Dispatch(audit.Event{
			UserID:   &p.UserID,
			Action:   "reservation_confirmed",
			Entity:   "reservation",
			EntityID: &res.ID,
		})
	}

	return res, nil
}
