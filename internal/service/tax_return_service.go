package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaxReturnService struct {
	taxReturnRepo *repository.TaxReturnRepository
	clientRepo    *repository.ClientRepository
	logger        *zap.Logger
}

func NewTaxReturnService(
	taxReturnRepo *repository.TaxReturnRepository,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *TaxReturnService {
	return &TaxReturnService{
		taxReturnRepo: taxReturnRepo,
		clientRepo:    clientRepo,
		logger:        logger,
	}
}

func (s *TaxReturnService) Create(ctx context.Context, req *domain.TaxReturnRequest) (*domain.TaxReturn, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	taxReturn := &domain.TaxReturn{
		ClientID:            req.ClientID,
		AgentID:             req.AgentID,
		TaxYear:             req.TaxYear,
		ReturnType:          req.ReturnType,
		Status:              taxReturnStatusOrDefault(req.Status),
		FederalRefund:       parseOptionalMoney(req.FederalRefund),
		StateRefund:         parseOptionalMoney(req.StateRefund),
		FederalOwed:         parseOptionalMoney(req.FederalOwed),
		StateOwed:           parseOptionalMoney(req.StateOwed),
		GrossIncome:         parseOptionalMoney(req.GrossIncome),
		AdjustedGrossIncome: parseOptionalMoney(req.AdjustedGrossIncome),
		TotalDeductions:     parseOptionalMoney(req.TotalDeductions),
		FilingDate:          req.FilingDate,
		Notes:               req.Notes,
	}
	stampSubmitted(taxReturn, nil)

	if err := s.taxReturnRepo.Create(ctx, taxReturn); err != nil {
		return nil, fmt.Errorf("failed to create tax return: %w", err)
	}

	s.logger.Info("tax return created",
		zap.String("tax_return_id", taxReturn.ID.String()),
		zap.Int("tax_year", taxReturn.TaxYear))
	return s.GetByID(ctx, taxReturn.ID)
}

func (s *TaxReturnService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaxReturn, error) {
	taxReturn, err := s.taxReturnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tax return: %w", err)
	}
	return taxReturn, nil
}

func (s *TaxReturnService) Update(ctx context.Context, id uuid.UUID, req *domain.TaxReturnRequest) (*domain.TaxReturn, error) {
	taxReturn, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	previousSubmitted := taxReturn.SubmittedDate

	taxReturn.ClientID = req.ClientID
	taxReturn.AgentID = req.AgentID
	taxReturn.TaxYear = req.TaxYear
	taxReturn.ReturnType = req.ReturnType
	taxReturn.Status = taxReturnStatusOrDefault(req.Status)
	taxReturn.FederalRefund = parseOptionalMoney(req.FederalRefund)
	taxReturn.StateRefund = parseOptionalMoney(req.StateRefund)
	taxReturn.FederalOwed = parseOptionalMoney(req.FederalOwed)
	taxReturn.StateOwed = parseOptionalMoney(req.StateOwed)
	taxReturn.GrossIncome = parseOptionalMoney(req.GrossIncome)
	taxReturn.AdjustedGrossIncome = parseOptionalMoney(req.AdjustedGrossIncome)
	taxReturn.TotalDeductions = parseOptionalMoney(req.TotalDeductions)
	taxReturn.FilingDate = req.FilingDate
	taxReturn.Notes = req.Notes
	taxReturn.Client = nil
	taxReturn.Agent = nil
	stampSubmitted(taxReturn, previousSubmitted)

	if err := s.taxReturnRepo.Update(ctx, taxReturn); err != nil {
		return nil, fmt.Errorf("failed to update tax return: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *TaxReturnService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.taxReturnRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tax return: %w", err)
	}
	return nil
}

func (s *TaxReturnService) List(ctx context.Context, search string) ([]domain.TaxReturn, error) {
	taxReturns, err := s.taxReturnRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax returns: %w", err)
	}
	if search == "" {
		return taxReturns, nil
	}

	filtered := make([]domain.TaxReturn, 0, len(taxReturns))
	for _, tr := range taxReturns {
		clientName := ""
		if tr.Client != nil {
			clientName = tr.Client.FullName
		}
		if MatchesSearch(search, clientName, tr.ReturnType, fmt.Sprintf("%d", tr.TaxYear)) {
			filtered = append(filtered, tr)
		}
	}
	return filtered, nil
}

func (s *TaxReturnService) checkClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
		}
		return fmt.Errorf("failed to check client: %w", err)
	}
	return nil
}

// stampSubmitted sets the submission timestamp the first time a return moves
// to submitted status. A previously recorded timestamp is kept as-is.
func stampSubmitted(taxReturn *domain.TaxReturn, previous *time.Time) {
	if taxReturn.Status != domain.TaxReturnStatusSubmitted {
		taxReturn.SubmittedDate = previous
		return
	}
	if previous != nil {
		taxReturn.SubmittedDate = previous
		return
	}
	now := time.Now().UTC()
	taxReturn.SubmittedDate = &now
}

func taxReturnStatusOrDefault(status string) domain.TaxReturnStatus {
	if status == "" {
		return domain.TaxReturnStatusPending
	}
	return domain.TaxReturnStatus(status)
}
