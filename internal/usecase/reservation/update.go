package reservation

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type UpdateReservation struct {
	repo  domain.Repository
	audit Auditor
}

func NewUpdateReservation(
	repo domain.Repository,
	audit Auditor,
) *UpdateReservation {
	return &UpdateReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	p auth.Principal,
	id uuid.UUID,
	patch domain.Patch,
) (res *models.Reservation, err error) {

	ctx, span := tracer.Start(ctx, "reservation.update")
	span.SetAttributes(attribute.String("reservation.id", id.String()))
	defer func() { finishSpan(span, err) }()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return uc.current(ctx, p, id)
	}

	var (
		moved   bool
		updated models.Reservation
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {

		r, err := tx.LockReservation(ctx, id)
		if err != nil {
			return notFoundAs(err, "reservation_not_found")
		}
		if !p.CanAccess(r.UserID) {
			return httperr.ErrForbidden("not_reservation_owner")
		}
		if err := domain.CanModify(domain.Status(r.Status)); err != nil {
			return err
		}

		var court *models.Court

		// --------------------------------------------------
		// Interval change: re-check availability and re-price
		// --------------------------------------------------
		if patch.MovesInterval(r) {
			iv, err := patch.Interval(r)
			if err != nil {
				return err
			}

			court, err = tx.LockCourt(ctx, r.CourtID)
			if err != nil {
				return notFoundAs(err, "court_not_found")
			}
			if !court.IsActive {
				return httperr.ErrState("court_inactive")
			}

			ok, err := tx.IsAvailable(ctx, r.CourtID, iv, &r.ID)
			if err != nil {
				return fmt.Errorf("check availability: %w", err)
			}
			if !ok {
				return httperr.ErrConflict("time_conflict")
			}

			price, err := tx.ActivePrice(ctx, r.CourtID)
			if err != nil {
				return fmt.Errorf("load price: %w", err)
			}

			r.StartAt, r.EndAt = iv.Start, iv.End
			r.TotalAmount = domain.CalculateTotal(price, iv)
			moved = true

			if r.Payment != nil && r.Payment.Status == models.PaymentStatusPending {
				r.Payment.Amount = r.TotalAmount
				if err := tx.SavePayment(ctx, r.Payment); err != nil {
					return fmt.Errorf("save payment: %w", err)
				}
			}
		}

		// --------------------------------------------------
		// Capacity applies to updates as well
		// --------------------------------------------------
		if patch.PlayersCount != nil {
			if court == nil {
				if court, err = tx.GetCourt(ctx, r.CourtID); err != nil {
					return notFoundAs(err, "court_not_found")
				}
			}
			if *patch.PlayersCount > court.MaxPlayers {
				return httperr.ErrValidation(
					"too_many_players",
					"players_count", fmt.Sprintf("court allows at most %d players", court.MaxPlayers),
				)
			}
		}

		patch.Apply(r)
		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}
		updated = *r
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, err = uc.repo.GetReservation(ctx, id)
	if err != nil {
		log.Printf("reservation %s updated but reload failed: %v", id, err)
		res = &updated
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "reservation_updated",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"interval_changed": moved},
	})

	return res, nil
}

// current answers a patch that changes nothing with the stored reservation.
func (uc *UpdateReservation) current(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.Reservation, error) {
	r, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "reservation_not_found")
	}
	if !p.CanAccess(r.UserID) {
		return nil, httperr.ErrForbidden("not_reservation_owner")
	}
	if err := domain.CanModify(domain.Status(r.Status)); err != nil {
		return nil, err
	}
	return r, nil
}
