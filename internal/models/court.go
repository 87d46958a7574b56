package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Court struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name       string `gorm:"size:64;not null" json:"name"`
	CourtType  string `gorm:"size:16;not null" json:"court_type"`
	Surface    string `gorm:"size:16;not null" json:"surface"`
	MaxPlayers int    `gorm:"not null;check:max_players >= 1 AND max_players <= 4" json:"max_players"`

	City        string `gorm:"size:32" json:"city"`
	Street      string `gorm:"size:32" json:"street"`
	PostalCode  string `gorm:"size:16" json:"postal_code"`
	Description string `gorm:"type:text" json:"description"`

	IsActive bool `gorm:"not null" json:"is_active"`

	Prices []CourtPrice `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"prices"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CourtPrice struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourtID uuid.UUID `gorm:"type:uuid;not null;index" json:"court_id"`

	PricePerHour decimal.Decimal `gorm:"type:numeric(7,2);not null;check:price_per_hour >= 0" json:"price_per_hour"`
	Currency     string          `gorm:"size:3;not null" json:"currency"`
	IsActive     bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivePrice returns the newest active price among the loaded prices.
func (c *Court) ActivePrice() *CourtPrice {
	var active *CourtPrice
	for i := range c.Prices {
		p := &c.Prices[i]
		if !p.IsActive {
			continue
		}
		if active == nil || p.CreatedAt.After(active.CreatedAt) {
			active = p
		}
	}
	return active
}
