package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type TaxReturnRepository struct {
	Repository[domain.TaxReturn]
}

func NewTaxReturnRepository(db *gorm.DB) *TaxReturnRepository {
	return &TaxReturnRepository{newRepository[domain.TaxReturn](db, "created_at DESC", "Client", "Agent")}
}

func (r *TaxReturnRepository) CountByStatuses(ctx context.Context, statuses []domain.TaxReturnStatus) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TaxReturn{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return int(count), err
}

// CountCreatedSince returns the number of returns created at or after the
// given instant.
func (r *TaxReturnRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TaxReturn{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return int(count), err
}

// CountByAgent returns the number of returns recorded against each agent
func (r *TaxReturnRepository) CountByAgent(ctx context.Context) (map[uuid.UUID]int, error) {
	type row struct {
		AgentID uuid.UUID
		N       int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.TaxReturn{}).
		Select("agent_id, COUNT(*) AS n").
		Where("agent_id IS NOT NULL").
		Group("agent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.AgentID] = r.N
	}
	return counts, nil
}
