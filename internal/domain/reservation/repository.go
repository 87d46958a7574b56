package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ListFilter struct {
	UserID  *uuid.UUID
	CourtID *uuid.UUID
	Status  *Status

	// ActiveOnly keeps pending and confirmed reservations.
	ActiveOnly bool
	// From limits results to reservations ending after it.
	From       *time.Time
}

type Repository interface {
	// -------- Transactions --------
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Court / User --------
	GetCourt(
		ctx context.Context,
		courtID uuid.UUID,
	) (*models.Court, error)

	// LockCourt takes a row lock that serializes interval claims per court.
	LockCourt(
		ctx context.Context,
		courtID uuid.UUID,
	) (*models.Court, error)

	GetUser(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.User, error)

	// -------- Pricing / Availability --------
	ActivePrice(
		ctx context.Context,
		courtID uuid.UUID,
	) (*models.CourtPrice, error)

	IsAvailable(
		ctx context.Context,
		courtID uuid.UUID,
		iv Interval,
		excludeID *uuid.UUID,
	) (bool, error)

	// -------- Reservation --------
	CreateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	// LockReservation loads the row with its payment under a row lock.
	LockReservation(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	SaveReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	GetReservation(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Reservation, error)

	ListReservations(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Reservation, error)

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	SavePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
