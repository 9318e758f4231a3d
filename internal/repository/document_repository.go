package repository

import (
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	Repository[domain.Document]
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{newRepository[domain.Document](db, "created_at DESC", "Client")}
}
