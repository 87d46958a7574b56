package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresURLEnv names the database used by tests that need real row locks
// and constraints.
const PostgresURLEnv = "TEST_DATABASE_URL"

// NewPostgresDB runs migrate inside a throwaway schema of TEST_DATABASE_URL
// and drops the schema on cleanup. The test is skipped when the variable is unset.
func NewPostgresDB(t testing.TB, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	admin, err := gorm.Open(postgres.Open(dsn), cfg)
	require.NoError(t, err)

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	require.NoError(t, admin.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error)
	require.NoError(t, admin.Exec(`CREATE SCHEMA `+schema).Error)

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), cfg)
	require.NoError(t, err)
	require.NoError(t, migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = admin.Exec(`DROP SCHEMA IF EXISTS ` + schema + ` CASCADE`).Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// withSearchPath keeps public on the path so extension operator classes resolve.
func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "search_path=" + schema + "%2Cpublic"
	}
	return dsn + " search_path=" + schema + ",public"
}
