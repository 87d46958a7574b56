package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CourtID uuid.UUID `gorm:"type:uuid;not null;index:idx_reservations_court_window,priority:1" json:"court_id"`
	Court   Court     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"court"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`

	PaymentID *uuid.UUID `gorm:"type:uuid" json:"payment_id"`
	Payment   *Payment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"payment,omitempty"`

	PlayersCount   int    `gorm:"not null;check:players_count >= 1" json:"players_count"`
	AdditionalInfo string `gorm:"type:text" json:"additional_info"`
	Status         string `gorm:"size:10;not null;index" json:"status"`

	StartAt time.Time `gorm:"not null;index:idx_reservations_court_window,priority:2" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
