package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type Payment struct {
	ID       uuid.UUID  `json:"id"`
	Method   string     `json:"method"`
	Status   string     `json:"status"`
	Amount   string     `json:"amount"`
	Currency string     `json:"currency"`
	PaidAt   *time.Time `json:"paid_at"`
}

type Reservation struct {
	ID             uuid.UUID `json:"id"`
	Court          Court     `json:"court"`
	User           User      `json:"user"`
	Payment        *Payment  `json:"payment"`
	PlayersCount   int       `json:"players_count"`
	AdditionalInfo string    `json:"additional_info"`
	Status         string    `json:"status"`
	TotalAmount    string    `json:"total_amount"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Slot is the public view of an occupied interval.
type Slot struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

type Quote struct {
	CourtID     uuid.UUID `json:"court_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Available   bool      `json:"available"`
	TotalAmount string    `json:"total_amount"`
	Currency    string    `json:"currency"`
}

func NewReservation(r models.Reservation) Reservation {
	out := Reservation{
		ID:             r.ID,
		Court:          NewCourt(r.Court),
		User:           NewUser(r.User),
		PlayersCount:   r.PlayersCount,
		AdditionalInfo: r.AdditionalInfo,
		Status:         r.Status,
		TotalAmount:    r.TotalAmount.StringFixed(2),
		StartAt:        r.StartAt,
		EndAt:          r.EndAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if p := r.Payment; p != nil {
		out.Payment = &Payment{
			ID:       p.ID,
			Method:   p.Method,
			Status:   p.Status,
			Amount:   p.Amount.StringFixed(2),
			Currency: p.Currency,
			PaidAt:   p.PaidAt,
		}
	}
	return out
}

func NewReservations(list []models.Reservation) []Reservation {
	out := make([]Reservation, 0, len(list))
	for _, r := range list {
		out = append(out, NewReservation(r))
	}
	return out
}

func NewSlots(list []models.Reservation) []Slot {
	out := make([]Slot, 0, len(list))
	for _, r := range list {
		out = append(out, Slot{ID: r.ID, Status: r.Status, StartAt: r.StartAt, EndAt: r.EndAt})
	}
	return out
}
