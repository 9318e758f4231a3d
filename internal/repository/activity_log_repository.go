package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityLogRepository handles audit trail data access. The table is
// append-only: the service layer only ever creates and reads entries.
type ActivityLogRepository struct {
	Repository[domain.ActivityLog]
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{newRepository[domain.ActivityLog](db, "created_at DESC")}
}

// ListByEntity retrieves entries recorded against a specific entity
func (r *ActivityLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
