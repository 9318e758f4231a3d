package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	staffRepo *repository.StaffRepository
	tokens    *auth.TokenManager
	logger    *zap.Logger
}

func NewAuthService(staffRepo *repository.StaffRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies staff credentials and issues a signed token. Failures are
// reported uniformly so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if staff.Status != domain.StaffStatusActive {
		return nil, ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.Issue(staff)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.staffRepo.TouchLastLogin(ctx, staff.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record login time",
			zap.String("staff_id", staff.ID.String()),
			zap.Error(err))
	}

	s.logger.Info("staff signed in", zap.String("staff_id", staff.ID.String()))
	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      staff,
	}, nil
}

// Me returns the staff account behind a validated session
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up staff: %w", err)
	}
	return staff, nil
}

// UpdateProfile lets a signed-in staff member edit their own contact details.
// Role and status never change through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *domain.ProfileUpdateRequest) (*domain.Staff, error) {
	staff, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if other, err := s.staffRepo.GetByEmail(ctx, req.Email); err == nil && other.ID != userID {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}

	staff.FullName = req.FullName
	staff.Email = req.Email
	staff.Phone = req.Phone
	staff.Department = req.Department

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("staff profile updated", zap.String("staff_id", userID.String()))
	return staff, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *domain.PasswordChangeRequest) error {
	staff, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		s.logger.Warn("password change with wrong current password",
			zap.String("staff_id", userID.String()))
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	staff.PasswordHash = string(hash)

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("staff password changed", zap.String("staff_id", userID.String()))
	return nil
}
