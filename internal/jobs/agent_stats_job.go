package jobs

import (
	"context"
	"time"

	"github.com/taxdesk/backoffice-api/internal/service"
	"go.uber.org/zap"
)

const agentStatsJobTimeout = 5 * time.Minute

// AgentStatsJob recomputes the derived client and return counters on agents.
// Counters drift when clients are reassigned or returns are deleted, so the
// job reconciles them from the live tables on a schedule.
type AgentStatsJob struct {
	agentService *service.AgentService
	logger       *zap.Logger
}

// NewAgentStatsJob creates a new agent stats reconciliation job.
func NewAgentStatsJob(agentService *service.AgentService, logger *zap.Logger) *AgentStatsJob {
	return &AgentStatsJob{
		agentService: agentService,
		logger:       logger,
	}
}

// Run recomputes counters for all agents. Errors are logged, not returned,
// so a failed run never stops the scheduler.
func (j *AgentStatsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), agentStatsJobTimeout)
	defer cancel()

	start := time.Now()
	if err := j.agentService.RecomputeStats(ctx); err != nil {
		j.logger.Error("agent stats recompute failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return
	}

	j.logger.Info("agent stats recompute completed",
		zap.Duration("elapsed", time.Since(start)))
}
