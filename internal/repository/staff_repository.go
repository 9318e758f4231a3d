package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type StaffRepository struct {
	Repository[domain.Staff]
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{newRepository[domain.Staff](db, "created_at DESC")}
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Staff{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}
