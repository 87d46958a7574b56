package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type CourtPrice struct {
	ID           uuid.UUID `json:"id"`
	PricePerHour string    `json:"price_per_hour"`
	Currency     string    `json:"currency"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Court struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	CourtType   string       `json:"court_type"`
	Surface     string       `json:"surface"`
	MaxPlayers  int          `json:"max_players"`
	City        string       `json:"city"`
	Street      string       `json:"street"`
	PostalCode  string       `json:"postal_code"`
	Description string       `json:"description"`
	IsActive    bool         `json:"is_active"`
	Price       *CourtPrice  `json:"price"`
	Prices      []CourtPrice `json:"prices"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewCourtPrice(p models.CourtPrice) CourtPrice {
	return CourtPrice{
		ID:           p.ID,
		PricePerHour: p.PricePerHour.StringFixed(2),
		Currency:     p.Currency,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

func NewCourt(c models.Court) Court {
	out := Court{
		ID:          c.ID,
		Name:        c.Name,
		CourtType:   c.CourtType,
		Surface:     c.Surface,
		MaxPlayers:  c.MaxPlayers,
		City:        c.City,
		Street:      c.Street,
		PostalCode:  c.PostalCode,
		Description: c.Description,
		IsActive:    c.IsActive,
		Prices:      make([]CourtPrice, 0, len(c.Prices)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	for _, p := range c.Prices {
		out.Prices = append(out.Prices, NewCourtPrice(p))
	}
	if active := c.ActivePrice(); active != nil {
		p := NewCourtPrice(*active)
		out.Price = &p
	}
	return out
}

func NewCourts(list []models.Court) []Court {
	out := make([]Court, 0, len(list))
	for _, c := range list {
		out = append(out, NewCourt(c))
	}
	return out
}
