package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DocumentService struct {
	documentRepo *repository.DocumentRepository
	clientRepo   *repository.ClientRepository
	storage      storage.Storage
	logger       *zap.Logger
}

func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	clientRepo *repository.ClientRepository,
	store storage.Storage,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		clientRepo:   clientRepo,
		storage:      store,
		logger:       logger,
	}
}

func (s *DocumentService) Create(ctx context.Context, req *domain.DocumentRequest) (*domain.Document, error) {
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	document := &domain.Document{
		ClientID:     req.ClientID,
		TaxReturnID:  req.TaxReturnID,
		Name:         req.Name,
		DocumentType: req.DocumentType,
		FileURL:      req.FileURL,
		FileSize:     req.FileSize,
		Status:       documentStatusOrDefault(req.Status),
		Notes:        req.Notes,
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("document created",
		zap.String("document_id", document.ID.String()),
		zap.String("document_type", document.DocumentType))
	return s.GetByID(ctx, document.ID)
}

func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return document, nil
}

func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req *domain.DocumentRequest) (*domain.Document, error) {
	document, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	document.ClientID = req.ClientID
	document.TaxReturnID = req.TaxReturnID
	document.Name = req.Name
	document.DocumentType = req.DocumentType
	document.Status = documentStatusOrDefault(req.Status)
	document.Notes = req.Notes
	document.Client = nil
	if req.FileURL != "" {
		document.FileURL = req.FileURL
	}
	if req.FileSize != nil {
		document.FileSize = req.FileSize
	}

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	document, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if document.FileURL != "" {
		if err := s.storage.Delete(ctx, document.FileURL); err != nil {
			s.logger.Warn("failed to delete stored file",
				zap.String("document_id", id.String()),
				zap.Error(err))
		}
	}
	return nil
}

func (s *DocumentService) List(ctx context.Context, search string) ([]domain.Document, error) {
	documents, err := s.documentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if search == "" {
		return documents, nil
	}

	filtered := make([]domain.Document, 0, len(documents))
	for _, d := range documents {
		clientName := ""
		if d.Client != nil {
			clientName = d.Client.FullName
		}
		if MatchesSearch(search, d.Name, d.DocumentType, clientName) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// Verify resolves a document review: accepted documents become verified,
// everything else is rejected. Both outcomes stamp the reviewer and time.
func (s *DocumentService) Verify(ctx context.Context, id uuid.UUID, accepted bool) (*domain.Document, error) {
	document, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if accepted {
		document.Status = domain.DocumentStatusVerified
	} else {
		document.Status = domain.DocumentStatusRejected
	}
	now := time.Now().UTC()
	document.VerifiedAt = &now
	if userCtx, ok := auth.FromContext(ctx); ok {
		document.VerifiedBy = userCtx.DisplayName
	}
	document.Client = nil

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to verify document: %w", err)
	}

	s.logger.Info("document reviewed",
		zap.String("document_id", id.String()),
		zap.Bool("accepted", accepted))
	return s.GetByID(ctx, id)
}

// UploadFile stores the file contents and attaches them to the document
func (s *DocumentService) UploadFile(ctx context.Context, id uuid.UUID, filename, contentType string, data io.Reader) (*domain.Document, error) {
	document, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	storagePath, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	document.FileURL = storagePath
	document.FileSize = &size
	if document.Status == domain.DocumentStatusMissing {
		document.Status = domain.DocumentStatusUploaded
	}
	document.Client = nil

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return s.GetByID(ctx, id)
}

// DownloadFile opens the stored file for reading. The caller closes it.
func (s *DocumentService) DownloadFile(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	document, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if document.FileURL == "" {
		return nil, nil, ErrNotFound
	}

	reader, err := s.storage.Download(ctx, document.FileURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return document, reader, nil
}

func (s *DocumentService) checkClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
		}
		return fmt.Errorf("failed to check client: %w", err)
	}
	return nil
}

func documentStatusOrDefault(status string) domain.DocumentStatus {
	if status == "" {
		return domain.DocumentStatusUploaded
	}
	return domain.DocumentStatus(status)
}
