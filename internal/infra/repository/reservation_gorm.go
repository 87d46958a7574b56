package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *ReservationGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Court / User
// --------------------------------------------------

func (r *ReservationGormRepository) GetCourt(
	ctx context.Context,
	courtID uuid.UUID,
) (*models.Court, error) {

	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, "id = ?", courtID).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *ReservationGormRepository) LockCourt(
	ctx context.Context,
	courtID uuid.UUID,
) (*models.Court, error) {

	var court models.Court
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&court, "id = ?", courtID).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *ReservationGormRepository) GetUser(
	ctx context.Context,
	userID uuid.UUID,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Pricing / Availability
// --------------------------------------------------

// ActivePrice returns nil when the court has no active price.
func (r *ReservationGormRepository) ActivePrice(
	ctx context.Context,
	courtID uuid.UUID,
) (*models.CourtPrice, error) {

	var prices []models.CourtPrice
	if err := r.db.WithContext(ctx).
		Where("court_id = ? AND is_active = ?", courtID, true).
		Order("created_at DESC").
		Limit(1).
		Find(&prices).Error; err != nil {
		return nil, err
	}

	if len(prices) == 0 {
		return nil, nil
	}
	return &prices[0], nil
}

func (r *ReservationGormRepository) IsAvailable(
	ctx context.Context,
	courtID uuid.UUID,
	iv domain.Interval,
	excludeID *uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where(
			"court_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			courtID,
			domain.ActiveStatuses(),
			iv.End,
			iv.Start,
		)

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count == 0, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return translateWriteError(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error,
	)
}

func (r *ReservationGormRepository) LockReservation(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if res.PaymentID != nil {
		var payment models.Payment
		if err := r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "id = ?", *res.PaymentID).Error; err != nil {
			return nil, err
		}
		res.Payment = &payment
	}

	return &res, nil
}

func (r *ReservationGormRepository) SaveReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return translateWriteError(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error,
	)
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := hydrate(r.db.WithContext(ctx)).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) ListReservations(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Reservation, error) {

	q := hydrate(r.db.WithContext(ctx))

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.CourtID != nil {
		q = q.Where("court_id = ?", *filter.CourtID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.ActiveOnly {
		q = q.Where("status IN ?", domain.ActiveStatuses())
	}
	if filter.From != nil {
		q = q.Where("end_at > ?", filter.From.UTC())
	}

	var list []models.Reservation
	if err := q.Order("start_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *ReservationGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ReservationGormRepository) SavePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Court").
		Preload("Court.Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("User").
		Preload("Payment")
}

// translateWriteError turns a violated no-overlap constraint into a booking conflict.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrConflict("time_conflict")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
