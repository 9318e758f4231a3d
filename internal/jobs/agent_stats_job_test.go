package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/testutil"
	"go.uber.org/zap"
)

// Run is invoked both from the cron schedule and once at process startup,
// so a single call must leave the counters reconciled.
func TestAgentStatsJob_Run(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewAgentService(
		repository.NewAgentRepository(db),
		repository.NewClientRepository(db),
		repository.NewTaxReturnRepository(db),
		zap.NewNop(),
	)

	agent := testutil.CreateTestAgent(t, db, "Margaret Holt")
	client := testutil.CreateTestClient(t, db, "Jane Doe", &agent.ID)
	testutil.CreateTestTaxReturn(t, db, client.ID, &agent.ID, domain.TaxReturnStatusPending)
	testutil.CreateTestTaxReturn(t, db, client.ID, &agent.ID, domain.TaxReturnStatusApproved)

	// Drift the stored counters so Run has something to correct.
	require.NoError(t, db.Model(&domain.Agent{}).
		Where("id = ?", agent.ID).
		Updates(map[string]interface{}{"total_clients": 0, "total_returns": 99}).Error)

	job := NewAgentStatsJob(svc, zap.NewNop())
	job.Run()

	var got domain.Agent
	require.NoError(t, db.First(&got, "id = ?", agent.ID).Error)
	assert.Equal(t, 1, got.TotalClients)
	assert.Equal(t, 2, got.TotalReturns)
}
