package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
)

type Quote struct {
	CourtID   uuid.UUID
	Interval  domain.Interval
	Available bool
	Total     decimal.Decimal
	Currency  string
}

// QuoteReservation previews availability and price without writing anything.
type QuoteReservation struct {
	repo domain.Repository
}

func NewQuoteReservation(repo domain.Repository) *QuoteReservation {
	return &QuoteReservation{repo: repo}
}

func (uc *QuoteReservation) Execute(
	ctx context.Context,
	courtID uuid.UUID,
	start time.Time,
	end time.Time,
) (*Quote, error) {

	iv, err := domain.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	court, err := uc.repo.GetCourt(ctx, courtID)
	if err != nil {
		return nil, notFoundAs(err, "court_not_found")
	}
	if !court.IsActive {
		return nil, httperr.ErrState("court_inactive")
	}

	ok, err := uc.repo.IsAvailable(ctx, courtID, iv, nil)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	price, err := uc.repo.ActivePrice(ctx, courtID)
	if err != nil {
		return nil, fmt.Errorf("load price: %w", err)
	}

	return &Quote{
		CourtID:   courtID,
		Interval:  iv,
		Available: ok,
		Total:     domain.CalculateTotal(price, iv),
		Currency:  currencyOf(price),
	}, nil
}
