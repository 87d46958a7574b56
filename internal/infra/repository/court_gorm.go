package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type CourtGormRepository struct {
	db *gorm.DB
}

func NewCourtGormRepository(db *gorm.DB) *CourtGormRepository {
	return &CourtGormRepository{db: db}
}

func (r *CourtGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CourtGormRepository{db: tx})
	})
}

// Create inserts the court together with its prices.
func (r *CourtGormRepository) Create(ctx context.Context, c *models.Court) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourtGormRepository) Save(ctx context.Context, c *models.Court) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *CourtGormRepository) Get(ctx context.Context, id uuid.UUID) (*models.Court, error) {
	var c models.Court
	if err := withPrices(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourtGormRepository) Lock(ctx context.Context, id uuid.UUID) (*models.Court, error) {
	var c models.Court
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourtGormRepository) List(ctx context.Context, activeOnly bool) ([]models.Court, error) {
	q := withPrices(r.db.WithContext(ctx))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var courts []models.Court
	if err := q.Order("name ASC").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *CourtGormRepository) ReplaceActivePrice(
	ctx context.Context,
	courtID uuid.UUID,
	p *models.CourtPrice,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.CourtPrice{}).
		Where("court_id = ? AND is_active = ?", courtID, true).
		Update("is_active", false).Error; err != nil {
		return err
	}

	p.CourtID = courtID
	p.IsActive = true
	return r.db.WithContext(ctx).Create(p).Error
}

func withPrices(db *gorm.DB) *gorm.DB {
	return db.Preload("Prices", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

var _ domain.Repository = (*CourtGormRepository)(nil)
