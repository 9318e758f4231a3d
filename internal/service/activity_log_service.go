package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityLogService exposes the audit trail. Entries are created by the
// audit middleware as a side effect of mutating requests; the API surface
// here is read-only.
type ActivityLogService struct {
	activityLogRepo *repository.ActivityLogRepository
	logger          *zap.Logger
}

func NewActivityLogService(activityLogRepo *repository.ActivityLogRepository, logger *zap.Logger) *ActivityLogService {
	return &ActivityLogService{
		activityLogRepo: activityLogRepo,
		logger:          logger,
	}
}

func (s *ActivityLogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	entry, err := s.activityLogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity log entry: %w", err)
	}
	return entry, nil
}

// ListForEntity returns the most recent entries touching one entity,
// newest first
func (s *ActivityLogService) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]domain.ActivityLog, error) {
	entries, err := s.activityLogRepo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity for entity: %w", err)
	}
	return entries, nil
}

func (s *ActivityLogService) List(ctx context.Context, search string) ([]domain.ActivityLog, error) {
	entries, err := s.activityLogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}
	if search == "" {
		return entries, nil
	}

	filtered := make([]domain.ActivityLog, 0, len(entries))
	for _, e := range entries {
		if MatchesSearch(search, e.UserEmail, e.Action, e.EntityType, e.Details) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Record appends one entry. Failures are logged and swallowed so audit
// writes never break the request that triggered them.
func (s *ActivityLogService) Record(ctx context.Context, entry *domain.ActivityLog) {
	if err := s.activityLogRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log entry",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}
