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

type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	clientRepo  *repository.ClientRepository
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

func (s *PaymentService) Create(ctx context.Context, req *domain.PaymentRequest) (*domain.Payment, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	amount, err := parseRequiredMoney(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount must be a valid number", ErrInvalidInput)
	}

	payment := &domain.Payment{
		ClientID:      req.ClientID,
		TaxReturnID:   req.TaxReturnID,
		Amount:        amount,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		Status:        paymentStatusOrDefault(req.Status),
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	stampProcessed(payment, nil)

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)))
	return s.GetByID(ctx, payment.ID)
}

func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req *domain.PaymentRequest) (*domain.Payment, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}
	amount, err := parseRequiredMoney(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount must be a valid number", ErrInvalidInput)
	}

	previousProcessed := payment.ProcessedAt

	payment.ClientID = req.ClientID
	payment.TaxReturnID = req.TaxReturnID
	payment.Amount = amount
	payment.PaymentType = req.PaymentType
	payment.PaymentMethod = req.PaymentMethod
	payment.Status = paymentStatusOrDefault(req.Status)
	payment.TransactionID = req.TransactionID
	payment.Notes = req.Notes
	payment.Client = nil
	stampProcessed(payment, previousProcessed)

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

func (s *PaymentService) List(ctx context.Context, search string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if search == "" {
		return payments, nil
	}

	filtered := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		clientName := ""
		if p.Client != nil {
			clientName = p.Client.FullName
		}
		if MatchesSearch(search, clientName, p.PaymentType, p.PaymentMethod, p.TransactionID) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *PaymentService) checkClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
		}
		return fmt.Errorf("failed to check client: %w", err)
	}
	return nil
}

// stampProcessed records when a payment reached completed status. Leaving
// completed clears the timestamp, matching how the ledger reads it.
func stampProcessed(payment *domain.Payment, previous *time.Time) {
	if payment.Status != domain.PaymentStatusCompleted {
		payment.ProcessedAt = nil
		return
	}
	if previous != nil {
		payment.ProcessedAt = previous
		return
	}
	now := time.Now().UTC()
	payment.ProcessedAt = &now
}

func paymentStatusOrDefault(status string) domain.PaymentStatus {
	if status == "" {
		return domain.PaymentStatusPending
	}
	return domain.PaymentStatus(status)
}
