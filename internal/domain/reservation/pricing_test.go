package reservation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

func price(perHour string) *models.CourtPrice {
	return &models.CourtPrice{
		PricePerHour: decimal.RequireFromString(perHour),
		Currency:     "PLN",
		IsActive:     true,
	}
}

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name  string
		price *models.CourtPrice
		iv    Interval
		want  string
	}{
		{"one hour", price("80"), Interval{at(10, 0), at(11, 0)}, "80.00"},
		{"ninety minutes", price("80"), Interval{at(10, 0), at(11, 30)}, "120.00"},
		{"twenty minutes rounds", price("50"), Interval{at(10, 0), at(10, 20)}, "16.67"},
		{"fractional price", price("45.50"), Interval{at(10, 0), at(12, 0)}, "91.00"},
		{"no active price", nil, Interval{at(10, 0), at(12, 0)}, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotal(tt.price, tt.iv)
			assert.Equal(t, tt.want, got.StringFixed(AmountPlaces))
		})
	}
}

func TestCalculateTotalIsLinearInDuration(t *testing.T) {
	p := price("80")

	one := CalculateTotal(p, Interval{at(8, 0), at(9, 0)})
	two := CalculateTotal(p, Interval{at(8, 0), at(10, 0)})

	assert.True(t, two.Equal(one.Mul(decimal.NewFromInt(2))), "got %s and %s", one, two)
}
