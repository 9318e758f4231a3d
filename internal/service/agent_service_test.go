package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newAgentService(t *testing.T) (*AgentService, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	svc := NewAgentService(
		repository.NewAgentRepository(db),
		repository.NewClientRepository(db),
		repository.NewTaxReturnRepository(db),
		zap.NewNop(),
	)
	return svc, db
}

func TestAgentService_Create_DefaultCommissionRate(t *testing.T) {
	svc, _ := newAgentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		rate string
		want string
	}{
		{"blank falls back", "", "15.00"},
		{"garbage falls back", "fifteen", "15.00"},
		{"explicit rate kept", "22.5", "22.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, err := svc.Create(ctx, &domain.AgentRequest{
				FullName:       "Agent " + tt.name,
				Email:          "agent@example.com",
				CommissionRate: tt.rate,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, agent.CommissionRate.StringFixed(2))
		})
	}
}

func TestAgentService_Create_DefaultsToActive(t *testing.T) {
	svc, _ := newAgentService(t)

	agent, err := svc.Create(context.Background(), &domain.AgentRequest{
		FullName: "New Agent",
		Email:    "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AgentStatusActive, agent.Status)
	assert.Equal(t, 0, agent.TotalClients)
	assert.Equal(t, 0, agent.TotalReturns)
}

func TestAgentService_Update_NeverTouchesCounters(t *testing.T) {
	svc, db := newAgentService(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, &domain.AgentRequest{
		FullName: "Counted Agent",
		Email:    "counted@example.com",
	})
	require.NoError(t, err)

	// simulate counters reconciled by the background job
	require.NoError(t, db.Model(&domain.Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{"total_clients": 3, "total_returns": 7}).Error)

	updated, err := svc.Update(ctx, agent.ID, &domain.AgentRequest{
		FullName: "Counted Agent Renamed",
		Email:    "counted@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.TotalClients)
	assert.Equal(t, 7, updated.TotalReturns)
}

func TestAgentService_RecomputeStats(t *testing.T) {
	svc, db := newAgentService(t)
	ctx := context.Background()

	agent, err := svc.Create(ctx, &domain.AgentRequest{
		FullName: "Busy Agent",
		Email:    "busy@example.com",
	})
	require.NoError(t, err)
	idle, err := svc.Create(ctx, &domain.AgentRequest{
		FullName: "Idle Agent",
		Email:    "idle@example.com",
	})
	require.NoError(t, err)

	clientA := testutil.CreateTestClient(t, db, "Client A", &agent.ID)
	testutil.CreateTestClient(t, db, "Client B", &agent.ID)
	testutil.CreateTestClient(t, db, "Unassigned", nil)
	testutil.CreateTestTaxReturn(t, db, clientA.ID, &agent.ID, domain.TaxReturnStatusPending)
	testutil.CreateTestTaxReturn(t, db, clientA.ID, &agent.ID, domain.TaxReturnStatusSubmitted)

	require.NoError(t, svc.RecomputeStats(ctx))

	busy, err := svc.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, busy.TotalClients)
	assert.Equal(t, 2, busy.TotalReturns)

	quiet, err := svc.GetByID(ctx, idle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, quiet.TotalClients)
	assert.Equal(t, 0, quiet.TotalReturns)
}
