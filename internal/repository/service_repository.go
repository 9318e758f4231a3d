package repository

import (
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	Repository[domain.Service]
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{newRepository[domain.Service](db, "created_at DESC")}
}
