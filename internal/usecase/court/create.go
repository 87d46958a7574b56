package court

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	domain "github.com/BruksfildServices01/court-booking/internal/domain/court"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type CreateCourtInput struct {
	Name        string
	CourtType   string
	Surface     string
	MaxPlayers  int
	City        string
	Street      string
	PostalCode  string
	Description string
	Price       domain.PriceInput
}

type CreateCourt struct {
	repo  domain.Repository
	cache Cache
	audit Auditor
}

func NewCreateCourt(repo domain.Repository, cache Cache, audit Auditor) *CreateCourt {
	return &CreateCourt{repo: repo, cache: cache, audit: audit}
}

// Execute stores the court with one active price.
func (uc *CreateCourt) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	in CreateCourtInput,
) (*models.Court, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("invalid_name", "name", "is required")
	}
	if !domain.ValidType(in.CourtType) {
		return nil, httperr.ErrValidation("invalid_court_type", "court_type", "must be indoor or outdoor")
	}
	if !domain.ValidSurface(in.Surface) {
		return nil, httperr.ErrValidation("invalid_surface", "surface", "must be clay, grass or hard")
	}

	maxPlayers := in.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = domain.DefaultMaxPlayers
	}
	if err := domain.ValidateMaxPlayers(maxPlayers); err != nil {
		return nil, err
	}

	currency := domain.NormalizeCurrency(in.Price.Currency)
	if err := domain.ValidatePrice(in.Price.PricePerHour, currency); err != nil {
		return nil, err
	}

	c := &models.Court{
		Name:        name,
		CourtType:   in.CourtType,
		Surface:     in.Surface,
		MaxPlayers:  maxPlayers,
		City:        strings.TrimSpace(in.City),
		Street:      strings.TrimSpace(in.Street),
		PostalCode:  strings.TrimSpace(in.PostalCode),
		Description: strings.TrimSpace(in.Description),
		IsActive:    true,
		Prices: []models.CourtPrice{{
			PricePerHour: in.Price.PricePerHour.Round(2),
			Currency:     currency,
			IsActive:     true,
		}},
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, c.ID)
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "court_created",
		Entity:   "court",
		EntityID: &c.ID,
	})

	return c, nil
}
