package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type AgentRepository struct {
	Repository[domain.Agent]
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{newRepository[domain.Agent](db, "created_at DESC")}
}

// UpdateStats writes the derived client/return counters for one agent
func (r *AgentRepository) UpdateStats(ctx context.Context, id uuid.UUID, totalClients, totalReturns int) error {
	return r.db.WithContext(ctx).Model(&domain.Agent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_clients": totalClients,
			"total_returns": totalReturns,
		}).Error
}
