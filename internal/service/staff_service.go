package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffService struct {
	staffRepo *repository.StaffRepository
	logger    *zap.Logger
}

func NewStaffService(staffRepo *repository.StaffRepository, logger *zap.Logger) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

func (s *StaffService) Create(ctx context.Context, req *domain.StaffRequest) (*domain.Staff, error) {
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if _, err := s.staffRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &domain.Staff{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         staffRoleOrDefault(req.Role),
		Department:   req.Department,
		Status:       staffStatusOrDefault(req.Status),
		PasswordHash: string(hash),
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}

	s.logger.Info("staff account created",
		zap.String("staff_id", staff.ID.String()),
		zap.String("role", string(staff.Role)))
	return staff, nil
}

func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// Update replaces the account profile. The password only changes when a new
// one is submitted.
func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req *domain.StaffRequest) (*domain.Staff, error) {
	staff, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if other, err := s.staffRepo.GetByEmail(ctx, req.Email); err == nil && other.ID != id {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}

	staff.FullName = req.FullName
	staff.Email = req.Email
	staff.Phone = req.Phone
	staff.Role = staffRoleOrDefault(req.Role)
	staff.Department = req.Department
	staff.Status = staffStatusOrDefault(req.Status)

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		staff.PasswordHash = string(hash)
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff, nil
}

func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	s.logger.Info("staff account deleted", zap.String("staff_id", id.String()))
	return nil
}

func (s *StaffService) List(ctx context.Context, search string) ([]domain.Staff, error) {
	staff, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	if search == "" {
		return staff, nil
	}

	filtered := make([]domain.Staff, 0, len(staff))
	for _, member := range staff {
		if MatchesSearch(search, member.FullName, member.Email, member.Department) {
			filtered = append(filtered, member)
		}
	}
	return filtered, nil
}

func staffRoleOrDefault(role string) domain.StaffRole {
	if role == "" {
		return domain.RoleStaff
	}
	return domain.StaffRole(role)
}

func staffStatusOrDefault(status string) domain.StaffStatus {
	if status == "" {
		return domain.StaffStatusActive
	}
	return domain.StaffStatus(status)
}
