package service

import (
	"context"
	"fmt"
	"time"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/reports"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

type DashboardService struct {
	clientRepo      *repository.ClientRepository
	agentRepo       *repository.AgentRepository
	taxReturnRepo   *repository.TaxReturnRepository
	documentRepo    *repository.DocumentRepository
	paymentRepo     *repository.PaymentRepository
	appointmentRepo *repository.AppointmentRepository
	logger          *zap.Logger
}

func NewDashboardService(
	clientRepo *repository.ClientRepository,
	agentRepo *repository.AgentRepository,
	taxReturnRepo *repository.TaxReturnRepository,
	documentRepo *repository.DocumentRepository,
	paymentRepo *repository.PaymentRepository,
	appointmentRepo *repository.AppointmentRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		clientRepo:      clientRepo,
		agentRepo:       agentRepo,
		taxReturnRepo:   taxReturnRepo,
		documentRepo:    documentRepo,
		paymentRepo:     paymentRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// startOfMonth truncates t to midnight on the first of its month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// GetStats assembles the dashboard summary. Counts come from count queries;
// revenue and completion rate are folded from fresh snapshots on every call.
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	totalClients, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	totalAgents, err := s.agentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count agents: %w", err)
	}
	totalReturns, err := s.taxReturnRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tax returns: %w", err)
	}
	pendingReturns, err := s.taxReturnRepo.CountByStatuses(ctx, domain.PendingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending returns: %w", err)
	}
	thisMonthReturns, err := s.taxReturnRepo.CountCreatedSince(ctx, startOfMonth(time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to count this month's returns: %w", err)
	}
	totalDocuments, err := s.documentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	totalPayments, err := s.paymentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	totalAppointments, err := s.appointmentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &domain.DashboardStats{
		TotalClients:      totalClients,
		TotalAgents:       totalAgents,
		TotalReturns:      totalReturns,
		PendingReturns:    pendingReturns,
		ThisMonthReturns:  thisMonthReturns,
		TotalDocuments:    totalDocuments,
		TotalPayments:     totalPayments,
		TotalAppointments: totalAppointments,
		TotalRevenue:      reports.TotalRevenue(payments),
		CompletionRate:    reports.CompletionRate(totalReturns, pendingReturns),
	}, nil
}
