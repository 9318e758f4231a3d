package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

// Table names must match the SQL migrations, including the models that
// override GORM's pluralized defaults.
func TestAutoMigrate_TableNames(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, database.AutoMigrate(db))

	migrator := db.Migrator()
	for _, table := range []string{
		"agents", "clients", "tax_returns", "documents", "payments",
		"appointments", "services", "staff", "activity_log",
	} {
		assert.True(t, migrator.HasTable(table), "expected table %q", table)
	}
	assert.False(t, migrator.HasTable("staffs"))
	assert.False(t, migrator.HasTable("activity_logs"))
}
