package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an isolated in-memory SQLite database with the full
// schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	err = db.AutoMigrate(
		&DBUser{},
		&DBUserGateAccess{},
		&DBGate{},
		&DBAttemptRecord{},
		&DBAdminSettings{},
	)
	require.NoError(t, err, "failed to migrate schema")

	return db
}

func testContext() context.Context {
	return context.Background()
}
