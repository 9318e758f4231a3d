package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/storage"
	"github.com/taxdesk/backoffice-api/internal/testutil"
	"go.uber.org/zap"
)

func newDocumentService(t *testing.T) (*DocumentService, *domain.Client) {
	db := testutil.SetupTestDB(t)
	client := testutil.CreateTestClient(t, db, "Jane Doe", nil)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewDocumentService(
		repository.NewDocumentRepository(db),
		repository.NewClientRepository(db),
		store,
		zap.NewNop(),
	)
	return svc, client
}

func createDocument(t *testing.T, svc *DocumentService, clientID domain.Client) *domain.Document {
	t.Helper()
	doc, err := svc.Create(context.Background(), &domain.DocumentRequest{
		ClientID:     clientID.ID,
		Name:         "w2-2025.pdf",
		DocumentType: "w2",
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentService_Create_DefaultsToUploaded(t *testing.T) {
	svc, client := newDocumentService(t)
	doc := createDocument(t, svc, *client)

	assert.Equal(t, domain.DocumentStatusUploaded, doc.Status)
	assert.Empty(t, doc.VerifiedBy)
	assert.Nil(t, doc.VerifiedAt)
}

func TestDocumentService_Verify_Accepted(t *testing.T) {
	svc, client := newDocumentService(t)
	doc := createDocument(t, svc, *client)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		DisplayName: "Reviewer One",
		Role:        domain.RoleStaff,
	})

	verified, err := svc.Verify(ctx, doc.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusVerified, verified.Status)
	assert.Equal(t, "Reviewer One", verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)
}

func TestDocumentService_Verify_Rejected(t *testing.T) {
	svc, client := newDocumentService(t)
	doc := createDocument(t, svc, *client)

	ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
		DisplayName: "Reviewer Two",
		Role:        domain.RoleAdmin,
	})

	rejected, err := svc.Verify(ctx, doc.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusRejected, rejected.Status)
	assert.Equal(t, "Reviewer Two", rejected.VerifiedBy)
	require.NotNil(t, rejected.VerifiedAt)
}

func TestDocumentService_UploadAndDownloadRoundTrip(t *testing.T) {
	svc, client := newDocumentService(t)
	doc := createDocument(t, svc, *client)
	ctx := context.Background()

	contents := "fake pdf bytes"
	uploaded, err := svc.UploadFile(ctx, doc.ID, "w2-2025.pdf", "application/pdf", strings.NewReader(contents))
	require.NoError(t, err)
	assert.NotEmpty(t, uploaded.FileURL)
	require.NotNil(t, uploaded.FileSize)
	assert.Equal(t, int64(len(contents)), *uploaded.FileSize)

	fetched, reader, err := svc.DownloadFile(ctx, doc.ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, uploaded.FileURL, fetched.FileURL)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, contents, string(data))
}

func TestDocumentService_Download_NoFile(t *testing.T) {
	svc, client := newDocumentService(t)
	doc := createDocument(t, svc, *client)

	_, _, err := svc.DownloadFile(context.Background(), doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
