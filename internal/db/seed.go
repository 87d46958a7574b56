package db

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

const (
	demoAdminEmail    = "admin@courts.local"
	demoAdminPassword = "admin12345"
)

type demoCourt struct {
	name         string
	courtType    string
	surface      string
	city         string
	street       string
	postalCode   string
	pricePerHour string
}

var demoCourts = []demoCourt{
	{"Kort Marszałkowska", "indoor", "hard", "Warszawa", "Marszałkowska 10", "00-001", "80"},
	{"Kort Nowy Świat", "outdoor", "clay", "Warszawa", "Nowy Świat 5", "00-029", "60"},
	{"Kort Floriańska", "indoor", "grass", "Kraków", "Floriańska 3", "31-019", "100"},
}

// Seed inserts an admin and a few courts when the database has none.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		err := tx.Where("email = ?", demoAdminEmail).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			hashed, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin = models.User{
				Email:        demoAdminEmail,
				PasswordHash: string(hashed),
				FirstName:    "Admin",
				Role:         models.RoleAdmin,
				IsActive:     true,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			log.Printf("seeded admin %s", demoAdminEmail)
		case err != nil:
			return err
		}

		var courts int64
		if err := tx.Model(&models.Court{}).Count(&courts).Error; err != nil {
			return err
		}
		if courts > 0 {
			return nil
		}

		for _, d := range demoCourts {
			c := models.Court{
				Name:       d.name,
				CourtType:  d.courtType,
				Surface:    d.surface,
				MaxPlayers: 4,
				City:       d.city,
				Street:     d.street,
				PostalCode: d.postalCode,
				IsActive:   true,
				Prices: []models.CourtPrice{{
					PricePerHour: decimal.RequireFromString(d.pricePerHour),
					Currency:     "PLN",
					IsActive:     true,
				}},
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		log.Printf("seeded %d demo courts", len(demoCourts))
		return nil
	})
}
