package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ClientRepository struct {
	Repository[domain.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{newRepository[domain.Client](db, "created_at DESC", "AssignedAgent")}
}

// Delete removes a client together with its returns, documents and payments
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("TaxReturns", "Documents", "Payments").
		Delete(&domain.Client{BaseModel: domain.BaseModel{ID: id}}).Error
}

// CountByAgent returns the number of clients assigned to each agent
func (r *ClientRepository) CountByAgent(ctx context.Context) (map[uuid.UUID]int, error) {
	type row struct {
		AssignedAgentID uuid.UUID
		N               int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Select("assigned_agent_id, COUNT(*) AS n").
		Where("assigned_agent_id IS NOT NULL").
		Group("assigned_agent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.AssignedAgentID] = r.N
	}
	return counts, nil
}
