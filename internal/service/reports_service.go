package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxdesk/backoffice-api/internal/reports"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

const topAgentsLimit = 5

// ReportsOverview is the full reports page payload
type ReportsOverview struct {
	TotalRevenue    decimal.Decimal         `json:"totalRevenue"`
	RevenueByMonth  []reports.MonthlyAmount `json:"revenueByMonth"`
	ReturnsByMonth  []reports.MonthlyCount  `json:"returnsByMonth"`
	ReturnsByStatus []reports.StatusCount   `json:"returnsByStatus"`
	CompletionRate  int                     `json:"completionRate"`
	TopAgents       []reports.AgentRank     `json:"topAgents"`
}

type ReportsService struct {
	taxReturnRepo *repository.TaxReturnRepository
	paymentRepo   *repository.PaymentRepository
	agentRepo     *repository.AgentRepository
	logger        *zap.Logger
}

func NewReportsService(
	taxReturnRepo *repository.TaxReturnRepository,
	paymentRepo *repository.PaymentRepository,
	agentRepo *repository.AgentRepository,
	logger *zap.Logger,
) *ReportsService {
	return &ReportsService{
		taxReturnRepo: taxReturnRepo,
		paymentRepo:   paymentRepo,
		agentRepo:     agentRepo,
		logger:        logger,
	}
}

// GetOverview re-fetches the collections and derives every chart series.
// Nothing is cached; the page is as fresh as the snapshot it folds.
func (s *ReportsService) GetOverview(ctx context.Context) (*ReportsOverview, error) {
	taxReturns, err := s.taxReturnRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax returns: %w", err)
	}
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	pending := reports.PendingReturns(taxReturns)
	return &ReportsOverview{
		TotalRevenue:    reports.TotalRevenue(payments),
		RevenueByMonth:  reports.RevenueByMonth(payments),
		ReturnsByMonth:  reports.ReturnsByMonth(taxReturns),
		ReturnsByStatus: reports.ReturnsByStatus(taxReturns),
		CompletionRate:  reports.CompletionRate(len(taxReturns), pending),
		TopAgents:       reports.TopAgents(agents, taxReturns, topAgentsLimit),
	}, nil
}
