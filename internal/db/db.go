package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/config"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("database ready")
	return db, nil
}

// Migrate creates the tables and, on Postgres, the constraints GORM tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, stmt := range postgresConstraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraints: %w", err)
		}
	}
	return nil
}

var postgresConstraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	// Two active reservations of one court may not share any instant.
	`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap') THEN
		ALTER TABLE reservations
			ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (
				court_id WITH =,
				tstzrange(start_at, end_at, '[)') WITH &&
			)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$`,

	`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reservations_end_after_start') THEN
		ALTER TABLE reservations
			ADD CONSTRAINT reservations_end_after_start CHECK (end_at > start_at);
	END IF;
END
$$`,

	`CREATE UNIQUE INDEX IF NOT EXISTS court_prices_one_active
		ON court_prices (court_id) WHERE is_active`,
}
