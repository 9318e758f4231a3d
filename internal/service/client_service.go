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

type ClientService struct {
	clientRepo *repository.ClientRepository
	agentRepo  *repository.AgentRepository
	logger     *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	agentRepo *repository.AgentRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		agentRepo:  agentRepo,
		logger:     logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.ClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		SSNLastFour:     req.SSNLastFour,
		FilingStatus:    req.FilingStatus,
		AssignedAgentID: req.AssignedAgentID,
		Status:          clientStatusOrDefault(req.Status),
		Notes:           req.Notes,
	}

	if err := s.checkAssignedAgent(ctx, req.AssignedAgentID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created", zap.String("client_id", client.ID.String()))
	return client, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.ClientRequest) (*domain.Client, error) {
	client, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignedAgent(ctx, req.AssignedAgentID); err != nil {
		return nil, err
	}

	client.FullName = req.FullName
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.SSNLastFour = req.SSNLastFour
	client.FilingStatus = req.FilingStatus
	client.AssignedAgentID = req.AssignedAgentID
	client.Status = clientStatusOrDefault(req.Status)
	client.Notes = req.Notes
	client.AssignedAgent = nil

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes the client along with its returns, documents and payments
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.logger.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

func (s *ClientService) List(ctx context.Context, search string) ([]domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if search == "" {
		return clients, nil
	}

	filtered := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if MatchesSearch(search, c.FullName, c.Email, c.Phone) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *ClientService) checkAssignedAgent(ctx context.Context, agentID *uuid.UUID) error {
	if agentID == nil {
		return nil
	}
	if _, err := s.agentRepo.GetByID(ctx, *agentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: assigned agent does not exist", ErrInvalidInput)
		}
		return fmt.Errorf("failed to check assigned agent: %w", err)
	}
	return nil
}

func clientStatusOrDefault(status string) domain.ClientStatus {
	if status == "" {
		return domain.ClientStatusActive
	}
	return domain.ClientStatus(status)
}
