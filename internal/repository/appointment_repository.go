package repository

import (
	"github.com/taxdesk/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// AppointmentRepository lists soonest-first, the order the schedule is
// shown in.
type AppointmentRepository struct {
	Repository[domain.Appointment]
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{newRepository[domain.Appointment](db, "scheduled_at ASC", "Client", "Agent")}
}
