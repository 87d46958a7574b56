package reservation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	courtdomain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	CourtID        uuid.UUID
	PlayersCount   int
	AdditionalInfo string
	StartAt        time.Time
	EndAt          time.Time
	PaymentMethod  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
}

func NewCreateReservation(
	repo domain.Repository,
	notifier Notifier,
	audit Auditor,
) *CreateReservation {
	return &CreateReservation{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	p auth.Principal,
	in CreateReservationInput,
) (res *models.Reservation, err error) {

	ctx, span := tracer.Start(ctx, "reservation.create")
	span.SetAttributes(attribute.String("court.id", in.CourtID.String()))
	defer func() { finishSpan(span, err) }()

	// --------------------------------------------------
	// 1️⃣ Input (nothing is touched on failure)
	// --------------------------------------------------
	iv, err := domain.NewInterval(in.StartAt, in.EndAt)
	if err != nil {
		return nil, err
	}
	if in.PlayersCount < 1 {
		return nil, httperr.ErrValidation("invalid_players_count", "players_count", "must be at least 1")
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = models.PaymentMethodInPerson
	}
	if method != models.PaymentMethodInPerson && method != models.PaymentMethodTransfer {
		return nil, httperr.ErrValidation("invalid_payment_method", "payment_method", "must be transfer or in_person")
	}

	var created models.Reservation

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {

		user, err := tx.GetUser(ctx, p.UserID)
		if err != nil {
			return notFoundAs(err, "user_not_found")
		}
		if !user.IsActive {
			return httperr.ErrState("user_inactive")
		}

		// --------------------------------------------------
		// 2️⃣ Court exists and is active (row lock serializes bookings per court)
		// --------------------------------------------------
		court, err := tx.LockCourt(ctx, in.CourtID)
		if err != nil {
			return notFoundAs(err, "court_not_found")
		}
		if !court.IsActive {
			return httperr.ErrState("court_inactive")
		}

		// --------------------------------------------------
		// 3️⃣ Availability
		// --------------------------------------------------
		ok, err := tx.IsAvailable(ctx, court.ID, iv, nil)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if !ok {
			return httperr.ErrConflict("time_conflict")
		}

		// --------------------------------------------------
		// 4️⃣ Capacity
		// --------------------------------------------------
		if in.PlayersCount > court.MaxPlayers {
			return httperr.ErrValidation(
				"too_many_players",
				"players_count", fmt.Sprintf("court allows at most %d players", court.MaxPlayers),
			)
		}

		// --------------------------------------------------
		// 5️⃣ Price
		// --------------------------------------------------
		price, err := tx.ActivePrice(ctx, court.ID)
		if err != nil {
			return fmt.Errorf("load price: %w", err)
		}
		total := domain.CalculateTotal(price, iv)

		// --------------------------------------------------
		// 6️⃣ Payment + reservation
		// --------------------------------------------------
		payment := &models.Payment{
			Method:   method,
			Status:   models.PaymentStatusPending,
			Amount:   total,
			Currency: currencyOf(price),
		}
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		created = models.Reservation{
			CourtID:        court.ID,
			UserID:         p.UserID,
			PaymentID:      &payment.ID,
			PlayersCount:   in.PlayersCount,
			AdditionalInfo: strings.TrimSpace(in.AdditionalInfo),
			Status:         string(domain.InitialStatus()),
			StartAt:        iv.Start,
			EndAt:          iv.End,
			TotalAmount:    total,
		}
		return tx.CreateReservation(ctx, &created)
	})

	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				UserID:   &p.UserID,
				Action:   "reservation_conflict",
				Entity:   "court",
				EntityID: &in.CourtID,
				Metadata: map[string]any{"start_at": iv.Start, "end_at": iv.End},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ After commit: hydrate, notify, audit
	// --------------------------------------------------
	res, err = uc.repo.GetReservation(ctx, created.ID)
	if err != nil {
		log.Printf("reservation %s created but reload failed: %v", created.ID, err)
		return &created, nil
	}

	uc.notifier.SendConfirmation(*res)

	uc.audit.Dispatch(audit.Event{
		UserID:   &p.UserID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"total_amount": res.TotalAmount.StringFixed(domain.AmountPlaces)},
	})

	return res, nil
}

func currencyOf(price *models.CourtPrice) string {
	if price == nil || price.Currency == "" {
		return courtdomain.CurrencyPLN
	}
	return price.Currency
}
