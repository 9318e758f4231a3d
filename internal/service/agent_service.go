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

type AgentService struct {
	agentRepo     *repository.AgentRepository
	clientRepo    *repository.ClientRepository
	taxReturnRepo *repository.TaxReturnRepository
	logger        *zap.Logger
}

func NewAgentService(
	agentRepo *repository.AgentRepository,
	clientRepo *repository.ClientRepository,
	taxReturnRepo *repository.TaxReturnRepository,
	logger *zap.Logger,
) *AgentService {
	return &AgentService{
		agentRepo:     agentRepo,
		clientRepo:    clientRepo,
		taxReturnRepo: taxReturnRepo,
		logger:        logger,
	}
}

func (s *AgentService) Create(ctx context.Context, req *domain.AgentRequest) (*domain.Agent, error) {
	agent := &domain.Agent{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
		CommissionRate: parseCommissionRate(req.CommissionRate),
		Status:         agentStatusOrDefault(req.Status),
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.logger.Info("agent created", zap.String("agent_id", agent.ID.String()))
	return agent, nil
}

func (s *AgentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return agent, nil
}

// Update replaces the editable agent fields. The derived counters are
// untouched; only the stats job writes those.
func (s *AgentService) Update(ctx context.Context, id uuid.UUID, req *domain.AgentRequest) (*domain.Agent, error) {
	agent, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agent.FullName = req.FullName
	agent.Email = req.Email
	agent.Phone = req.Phone
	agent.LicenseNumber = req.LicenseNumber
	agent.Specialization = req.Specialization
	agent.CommissionRate = parseCommissionRate(req.CommissionRate)
	agent.Status = agentStatusOrDefault(req.Status)

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}
	return agent, nil
}

func (s *AgentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.agentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	s.logger.Info("agent deleted", zap.String("agent_id", id.String()))
	return nil
}

func (s *AgentService) List(ctx context.Context, search string) ([]domain.Agent, error) {
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	if search == "" {
		return agents, nil
	}

	filtered := make([]domain.Agent, 0, len(agents))
	for _, a := range agents {
		if MatchesSearch(search, a.FullName, a.Email, a.LicenseNumber, a.Specialization) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// RecomputeStats refreshes the derived client and return counters for every
// agent. Called by the scheduled stats job.
func (s *AgentService) RecomputeStats(ctx context.Context) error {
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list agents: %w", err)
	}

	clientCounts, err := s.clientRepo.CountByAgent(ctx)
	if err != nil {
		return fmt.Errorf("failed to count clients per agent: %w", err)
	}
	returnCounts, err := s.taxReturnRepo.CountByAgent(ctx)
	if err != nil {
		return fmt.Errorf("failed to count returns per agent: %w", err)
	}

	for _, agent := range agents {
		totalClients := clientCounts[agent.ID]
		totalReturns := returnCounts[agent.ID]
		if agent.TotalClients == totalClients && agent.TotalReturns == totalReturns {
			continue
		}
		if err := s.agentRepo.UpdateStats(ctx, agent.ID, totalClients, totalReturns); err != nil {
			return fmt.Errorf("failed to update stats for agent %s: %w", agent.ID, err)
		}
	}
	return nil
}

func agentStatusOrDefault(status string) domain.AgentStatus {
	if status == "" {
		return domain.AgentStatusActive
	}
	return domain.AgentStatus(status)
}
