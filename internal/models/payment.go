package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodInPerson = "in_person"

	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Method   string          `gorm:"size:10;not null" json:"method"`
	Status   string          `gorm:"size:10;not null" json:"status"`
	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string          `gorm:"size:3;not null" json:"currency"`
	PaidAt   *time.Time      `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
