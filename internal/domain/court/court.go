package court

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/court-booking/internal/httperr"
)

const (
	TypeIndoor  = "indoor"
	TypeOutdoor = "outdoor"

	SurfaceClay  = "clay"
	SurfaceGrass = "grass"
	SurfaceHard  = "hard"

	CurrencyPLN = "PLN"
	CurrencyEUR = "EUR"

	MinPlayers        = 1
	MaxPlayers        = 4
	DefaultMaxPlayers = 2
)

func ValidType(t string) bool {
	return t == TypeIndoor || t == TypeOutdoor
}

func ValidSurface(s string) bool {
	switch s {
	case SurfaceClay, SurfaceGrass, SurfaceHard:
		return true
	}
	return false
}

func ValidCurrency(c string) bool {
	return c == CurrencyPLN || c == CurrencyEUR
}

// NormalizeCurrency upper-cases the code and applies the default.
func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return CurrencyPLN
	}
	return c
}

func ValidateMaxPlayers(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return httperr.ErrValidation("invalid_max_players", "max_players", "must be between 1 and 4")
	}
	return nil
}

func ValidatePrice(perHour decimal.Decimal, currency string) error {
	if perHour.IsNegative() {
		return httperr.ErrValidation("invalid_price", "price_per_hour", "must not be negative")
	}
	if !ValidCurrency(currency) {
		return httperr.ErrValidation("invalid_currency", "currency", "must be PLN or EUR")
	}
	return nil
}
