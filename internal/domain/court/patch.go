package court

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

type PriceInput struct {
	PricePerHour decimal.Decimal
	Currency     string
}

// Patch holds optional court changes. A non-nil Price replaces the active price.
type Patch struct {
	Name        *string
	CourtType   *string
	Surface     *string
	MaxPlayers  *int
	City        *string
	Street      *string
	PostalCode  *string
	Description *string
	Price       *PriceInput
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.ErrValidation("invalid_name", "name", "must not be blank")
	}
	if p.CourtType != nil && !ValidType(*p.CourtType) {
		return httperr.ErrValidation("invalid_court_type", "court_type", "must be indoor or outdoor")
	}
	if p.Surface != nil && !ValidSurface(*p.Surface) {
		return httperr.ErrValidation("invalid_surface", "surface", "must be clay, grass or hard")
	}
	if p.MaxPlayers != nil {
		if err := ValidateMaxPlayers(*p.MaxPlayers); err != nil {
			return err
		}
	}
	if p.Price != nil {
		p.Price.Currency = NormalizeCurrency(p.Price.Currency)
		return ValidatePrice(p.Price.PricePerHour, p.Price.Currency)
	}
	return nil
}

func (p Patch) Apply(c *models.Court) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.Name, p.Name)
	set(&c.CourtType, p.CourtType)
	set(&c.Surface, p.Surface)
	set(&c.City, p.City)
	set(&c.Street, p.Street)
	set(&c.PostalCode, p.PostalCode)
	set(&c.Description, p.Description)
	if p.MaxPlayers != nil {
		c.MaxPlayers = *p.MaxPlayers
	}
}
