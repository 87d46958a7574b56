package court

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/dto"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
)

// Cache is the catalog read cache. Implementations swallow their own errors.
type Cache interface {
	GetCourt(ctx context.Context, id uuid.UUID) (*dto.Court, bool)
	SetCourt(ctx context.Context, court dto.Court)
	GetList(ctx context.Context, activeOnly bool) ([]dto.Court, bool)
	SetList(ctx context.Context, activeOnly bool, list []dto.Court)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// NopCache is used when no cache is configured.
type NopCache struct{}

func (NopCache) GetCourt(context.Context, uuid.UUID) (*dto.Court, bool) { return nil, false }
func (NopCache) SetCourt(context.Context, dto.Court) {}
func (NopCache) GetList(context.Context, bool) ([]dto.Court, bool) { return nil, false }
func (NopCache) SetList(context.Context, bool, []dto.Court) {}
func (NopCache) Invalidate(context.Context, uuid.UUID) {}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
