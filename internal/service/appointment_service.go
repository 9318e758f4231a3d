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

const defaultAppointmentMinutes = 60

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	clientRepo      *repository.ClientRepository
	agentRepo       *repository.AgentRepository
	logger          *zap.Logger
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	clientRepo *repository.ClientRepository,
	agentRepo *repository.AgentRepository,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		agentRepo:       agentRepo,
		logger:          logger,
	}
}

func (s *AppointmentService) Create(ctx context.Context, req *domain.AppointmentRequest) (*domain.Appointment, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		ClientID:        req.ClientID,
		AgentID:         req.AgentID,
		Title:           req.Title,
		AppointmentType: appointmentTypeOrDefault(req.AppointmentType),
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: durationOrDefault(req.DurationMinutes),
		Status:          appointmentStatusOrDefault(req.Status),
		Location:        req.Location,
		Notes:           req.Notes,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info("appointment created",
		zap.String("appointment_id", appointment.ID.String()),
		zap.Time("scheduled_at", appointment.ScheduledAt))
	return s.GetByID(ctx, appointment.ID)
}

func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, req *domain.AppointmentRequest) (*domain.Appointment, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	appointment.ClientID = req.ClientID
	appointment.AgentID = req.AgentID
	appointment.Title = req.Title
	appointment.AppointmentType = appointmentTypeOrDefault(req.AppointmentType)
	appointment.ScheduledAt = req.ScheduledAt
	appointment.DurationMinutes = durationOrDefault(req.DurationMinutes)
	appointment.Status = appointmentStatusOrDefault(req.Status)
	appointment.Location = req.Location
	appointment.Notes = req.Notes
	appointment.Client = nil
	appointment.Agent = nil

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *AppointmentService) List(ctx context.Context, search string) ([]domain.Appointment, error) {
	appointments, err := s.appointmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	if search == "" {
		return appointments, nil
	}

	filtered := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		clientName := ""
		if a.Client != nil {
			clientName = a.Client.FullName
		}
		agentName := ""
		if a.Agent != nil {
			agentName = a.Agent.FullName
		}
		if MatchesSearch(search, a.Title, a.AppointmentType, a.Location, clientName, agentName) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (s *AppointmentService) checkReferences(ctx context.Context, req *domain.AppointmentRequest) error {
	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check client: %w", err)
		}
	}
	if req.AgentID != nil {
		if _, err := s.agentRepo.GetByID(ctx, *req.AgentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: agent does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check agent: %w", err)
		}
	}
	return nil
}

func appointmentTypeOrDefault(t string) string {
	if t == "" {
		return "consultation"
	}
	return t
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return defaultAppointmentMinutes
	}
	return minutes
}

func appointmentStatusOrDefault(status string) domain.AppointmentStatus {
	if status == "" {
		return domain.AppointmentStatusScheduled
	}
	return domain.AppointmentStatus(status)
}
