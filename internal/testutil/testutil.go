// Package testutil builds throwaway sqlite databases seeded with domain rows.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

// NewDB opens an in-memory database on a single connection, so concurrent
// transactions queue up the way row locks make them queue on Postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// At returns a fixed future day at the given UTC wall time.
func At(hour, minute int) time.Time {
	return time.Date(2030, 6, 14, hour, minute, 0, 0, time.UTC)
}

func CreateUser(t testing.TB, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	u := &models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Player",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

type CourtOpts struct {
	Name       string
	MaxPlayers int
	// PricePerHour empty means no price row.
	PricePerHour string
	Inactive     bool
}

func CreateCourt(t testing.TB, db *gorm.DB, opts CourtOpts) *models.Court {
	t.Helper()

	if opts.Name == "" {
		opts.Name = "Court A"
	}
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = 4
	}

	c := &models.Court{
		Name:       opts.Name,
		CourtType:  "outdoor",
		Surface:    "clay",
		MaxPlayers: opts.MaxPlayers,
		City:       "Kraków",
		Street:     "Tenisowa 1",
		PostalCode: "30-001",
		IsActive:   !opts.Inactive,
	}
	if opts.PricePerHour != "" {
		c.Prices = []models.CourtPrice{{
			PricePerHour: decimal.RequireFromString(opts.PricePerHour),
			Currency:     "PLN",
			IsActive:     true,
		}}
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateReservation inserts a row directly, bypassing the lifecycle rules.
func CreateReservation(
	t testing.TB,
	db *gorm.DB,
	court *models.Court,
	user *models.User,
	start, end time.Time,
	status string,
) *models.Reservation {
	t.Helper()

	r := &models.Reservation{
		CourtID:      court.ID,
		UserID:       user.ID,
		PlayersCount: 2,
		Status:       status,
		StartAt:      start.UTC(),
		EndAt:        end.UTC(),
		TotalAmount:  decimal.Zero,
	}
	require.NoError(t, db.Omit("Court", "User", "Payment").Create(r).Error)
	return r
}

func CountReservations(t testing.TB, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&n).Error)
	return n
}
