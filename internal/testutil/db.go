// Package testutil provides shared helpers for package tests. Tests run
// against an in-memory SQLite database migrated from the GORM models, so
// no external services are required.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/database"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory database and migrates all models.
// Each call returns an isolated database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database with shared cache keeps all pooled
	// connections on the same schema while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test schema")

	t.Cleanup(func() {
		CleanupTestData(t, db)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// CleanupTestData removes all rows. Delete order respects foreign keys.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := []string{
		"activity_log",
		"appointments",
		"payments",
		"documents",
		"tax_returns",
		"clients",
		"agents",
		"services",
		"staff",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestAgent inserts an agent with sensible defaults
func CreateTestAgent(t *testing.T, db *gorm.DB, name string) *domain.Agent {
	t.Helper()

	agent := &domain.Agent{
		FullName:       name,
		Email:          "agent@example.com",
		CommissionRate: decimal.NewFromFloat(15.00),
		Status:         domain.AgentStatusActive,
	}
	require.NoError(t, db.Create(agent).Error)
	return agent
}

// CreateTestClient inserts a client, optionally assigned to an agent
func CreateTestClient(t *testing.T, db *gorm.DB, name string, agentID *uuid.UUID) *domain.Client {
	t.Helper()

	client := &domain.Client{
		FullName:        name,
		Email:           "client@example.com",
		Status:          domain.ClientStatusActive,
		AssignedAgentID: agentID,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateTestTaxReturn inserts a tax return for the given client
func CreateTestTaxReturn(t *testing.T, db *gorm.DB, clientID uuid.UUID, agentID *uuid.UUID, status domain.TaxReturnStatus) *domain.TaxReturn {
	t.Helper()

	taxReturn := &domain.TaxReturn{
		ClientID:   clientID,
		AgentID:    agentID,
		TaxYear:    2025,
		ReturnType: "individual",
		Status:     status,
	}
	require.NoError(t, db.Create(taxReturn).Error)
	return taxReturn
}

// CreateTestStaff inserts a staff account with the given password hashed
func CreateTestStaff(t *testing.T, db *gorm.DB, email, password string, role domain.StaffRole) *domain.Staff {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	staff := &domain.Staff{
		FullName:     "Test User",
		Email:        email,
		Role:         role,
		Status:       domain.StaffStatusActive,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}
