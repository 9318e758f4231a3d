package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
)

func newReportsService(t *testing.T) (*ReportsService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewReportsService(
		repository.NewTaxReturnRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewAgentRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestReportsService_GetOverview_EmptyDatabase(t *testing.T) {
	svc, _ := newReportsService(t)

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.True(t, overview.TotalRevenue.IsZero())
	assert.Len(t, overview.RevenueByMonth, 12)
	assert.Len(t, overview.ReturnsByMonth, 12)
	assert.Len(t, overview.ReturnsByStatus, 6)
	assert.Zero(t, overview.CompletionRate)
	assert.Empty(t, overview.TopAgents)
}

func TestReportsService_GetOverview_DerivesSeries(t *testing.T) {
	svc, db := newReportsService(t)
	ctx := context.Background()

	busy := testutil.CreateTestAgent(t, db, "Sam Preparer")
	idle := testutil.CreateTestAgent(t, db, "Idle Agent")
	client := testutil.CreateTestClient(t, db, "Jane Doe", &busy.ID)

	testutil.CreateTestTaxReturn(t, db, client.ID, &busy.ID, domain.TaxReturnStatusPending)
	testutil.CreateTestTaxReturn(t, db, client.ID, &busy.ID, domain.TaxReturnStatusApproved)
	testutil.CreateTestTaxReturn(t, db, client.ID, nil, domain.TaxReturnStatusSubmitted)

	require.NoError(t, db.Create(&domain.Payment{
		ClientID:    client.ID,
		Amount:      decimal.RequireFromString("450.00"),
		PaymentType: "preparation_fee",
		Status:      domain.PaymentStatusCompleted,
	}).Error)
	require.NoError(t, db.Create(&domain.Payment{
		ClientID:    client.ID,
		Amount:      decimal.RequireFromString("100.00"),
		PaymentType: "preparation_fee",
		Status:      domain.PaymentStatusRefunded,
	}).Error)

	overview, err := svc.GetOverview(ctx)
	require.NoError(t, err)

	assert.True(t, overview.TotalRevenue.Equal(decimal.RequireFromString("450.00")))

	// Only the pending return is unresolved, 2 of 3 done
	assert.Equal(t, 67, overview.CompletionRate)

	var statusTotal int
	for _, sc := range overview.ReturnsByStatus {
		statusTotal += sc.Count
	}
	assert.Equal(t, 3, statusTotal)

	require.Len(t, overview.TopAgents, 2)
	assert.Equal(t, busy.ID, overview.TopAgents[0].Agent.ID)
	assert.Equal(t, 2, overview.TopAgents[0].ReturnCount)
	assert.Equal(t, idle.ID, overview.TopAgents[1].Agent.ID)
	assert.Zero(t, overview.TopAgents[1].ReturnCount)
}
