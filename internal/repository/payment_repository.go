package repository

import (
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	Repository[domain.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{newRepository[domain.Payment](db, "created_at DESC", "Client")}
}
