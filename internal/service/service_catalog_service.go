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

// ServiceCatalogService manages the offered-services price list
type ServiceCatalogService struct {
	serviceRepo *repository.ServiceRepository
	logger      *zap.Logger
}

func NewServiceCatalogService(serviceRepo *repository.ServiceRepository, logger *zap.Logger) *ServiceCatalogService {
	return &ServiceCatalogService{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

func (s *ServiceCatalogService) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.Service, error) {
	price, err := parseRequiredMoney(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price must be a valid number", ErrInvalidInput)
	}

	svc := &domain.Service{
		Name:             req.Name,
		Description:      req.Description,
		Category:         categoryOrDefault(req.Category),
		Price:            price,
		DurationEstimate: req.DurationEstimate,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.logger.Info("service created", zap.String("service_id", svc.ID.String()))
	return svc, nil
}

func (s *ServiceCatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *ServiceCatalogService) Update(ctx context.Context, id uuid.UUID, req *domain.ServiceRequest) (*domain.Service, error) {
	svc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	price, err := parseRequiredMoney(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price must be a valid number", ErrInvalidInput)
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Category = categoryOrDefault(req.Category)
	svc.Price = price
	svc.DurationEstimate = req.DurationEstimate
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *ServiceCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *ServiceCatalogService) List(ctx context.Context, search string) ([]domain.Service, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if search == "" {
		return services, nil
	}

	filtered := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if MatchesSearch(search, svc.Name, svc.Category, svc.Description) {
			filtered = append(filtered, svc)
		}
	}
	return filtered, nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "individual"
	}
	return category
}
