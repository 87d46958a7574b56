package reservation

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

// AmountPlaces is the currency precision used when persisting totals.
const AmountPlaces = 2

var secondsPerHour = decimal.NewFromInt(3600)

// CalculateTotal charges the hourly price pro rata by the second.
// A court without an active price costs nothing.
func CalculateTotal(price *models.CourtPrice, iv Interval) decimal.Decimal {
	if price == nil {
		return decimal.Zero.Round(AmountPlaces)
	}

	seconds := decimal.New(int64(iv.Duration()), -9)
	return price.PricePerHour.Mul(seconds).Div(secondsPerHour).Round(AmountPlaces)
}
