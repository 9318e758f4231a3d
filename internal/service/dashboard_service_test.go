package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
)

func newDashboardService(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewDashboardService(
		repository.NewClientRepository(db),
		repository.NewAgentRepository(db),
		repository.NewTaxReturnRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewAppointmentRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestDashboardService_GetStats_EmptyDatabase(t *testing.T) {
	svc, _ := newDashboardService(t)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalClients)
	assert.Zero(t, stats.TotalReturns)
	assert.Zero(t, stats.CompletionRate)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestDashboardService_GetStats_CountsAndDerivedFigures(t *testing.T) {
	svc, db := newDashboardService(t)
	ctx := context.Background()

	agent := testutil.CreateTestAgent(t, db, "Sam Preparer")
	client := testutil.CreateTestClient(t, db, "Jane Doe", &agent.ID)
	other := testutil.CreateTestClient(t, db, "Bob Smith", nil)

	testutil.CreateTestTaxReturn(t, db, client.ID, &agent.ID, domain.TaxReturnStatusPending)
	testutil.CreateTestTaxReturn(t, db, client.ID, &agent.ID, domain.TaxReturnStatusReview)
	testutil.CreateTestTaxReturn(t, db, other.ID, nil, domain.TaxReturnStatusSubmitted)

	require.NoError(t, db.Create(&domain.Payment{
		ClientID:    client.ID,
		Amount:      decimal.RequireFromString("150.50"),
		PaymentType: "preparation_fee",
		Status:      domain.PaymentStatusCompleted,
	}).Error)
	require.NoError(t, db.Create(&domain.Payment{
		ClientID:    other.ID,
		Amount:      decimal.RequireFromString("999.99"),
		PaymentType: "preparation_fee",
		Status:      domain.PaymentStatusPending,
	}).Error)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalClients)
	assert.Equal(t, 1, stats.TotalAgents)
	assert.Equal(t, 3, stats.TotalReturns)
	assert.Equal(t, 2, stats.PendingReturns)
	assert.Equal(t, 3, stats.ThisMonthReturns)
	assert.Equal(t, 2, stats.TotalPayments)

	// Only the completed payment contributes to revenue
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("150.50")))
	// 1 of 3 returns resolved
	assert.Equal(t, 33, stats.CompletionRate)
}

func TestDashboardService_GetStats_ThisMonthExcludesOlderReturns(t *testing.T) {
	svc, db := newDashboardService(t)

	client := testutil.CreateTestClient(t, db, "Jane Doe", nil)
	fresh := testutil.CreateTestTaxReturn(t, db, client.ID, nil, domain.TaxReturnStatusPending)
	old := testutil.CreateTestTaxReturn(t, db, client.ID, nil, domain.TaxReturnStatusSubmitted)

	// Push one return into the previous month
	lastMonth := startOfMonth(time.Now().UTC()).Add(-time.Hour)
	require.NoError(t, db.Model(&domain.TaxReturn{}).
		Where("id = ?", old.ID).
		Update("created_at", lastMonth).Error)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalReturns)
	assert.Equal(t, 1, stats.ThisMonthReturns, "only %s counts this month", fresh.ID)
}
