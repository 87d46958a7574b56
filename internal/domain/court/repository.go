package court

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, c *models.Court) error
	Save(ctx context.Context, c *models.Court) error

	// Get preloads prices.
	Get(ctx context.Context, id uuid.UUID) (*models.Court, error)
	Lock(ctx context.Context, id uuid.UUID) (*models.Court, error)
	List(ctx context.Context, activeOnly bool) ([]models.Court, error)

	// ReplaceActivePrice deactivates every active price of the court and inserts p.
	ReplaceActivePrice(ctx context.Context, courtID uuid.UUID, p *models.CourtPrice) error
}
