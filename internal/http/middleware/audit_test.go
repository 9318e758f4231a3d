package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/repository"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/testutil"
)

func newAuditRouter(t *testing.T, handler http.HandlerFunc) (chi.Router, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	activityLog := service.NewActivityLogService(repository.NewActivityLogRepository(db), zap.NewNop())
	audit := NewAuditMiddleware(activityLog, nil, zap.NewNop())

	r := chi.NewRouter()
	r.Use(audit.Audit)
	r.Post("/api/v1/clients", handler)
	r.Put("/api/v1/clients/{id}", handler)
	r.Delete("/api/v1/clients/{id}", handler)
	r.Get("/api/v1/clients", handler)
	r.Post("/api/v1/documents/{id}/verify", handler)
	r.Post("/api/v1/auth/login", handler)
	return r, db
}

func recordedEntries(t *testing.T, db *gorm.DB) []domain.ActivityLog {
	t.Helper()
	var entries []domain.ActivityLog
	require.NoError(t, db.Order("created_at ASC").Find(&entries).Error)
	return entries
}

func TestAudit_RecordsSuccessfulMutation(t *testing.T) {
	router, db := newAuditRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{"fullName":"Jane Doe"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	user := &auth.UserContext{UserID: uuid.New(), Email: "reviewer@example.com", Role: domain.RoleStaff}
	req = req.WithContext(auth.WithUserContext(req.Context(), user))

	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := recordedEntries(t, db)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "create", entry.Action)
	assert.Equal(t, "Client", entry.EntityType)
	assert.Equal(t, "reviewer@example.com", entry.UserEmail)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, user.UserID, *entry.UserID)
	assert.Equal(t, "203.0.113.9", entry.IPAddress)
	assert.Contains(t, entry.Details, "Jane Doe")
}

func TestAudit_CapturesEntityIDFromRoute(t *testing.T) {
	router, db := newAuditRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/clients/"+id.String(), nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := recordedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "delete", entries[0].Action)
	require.NotNil(t, entries[0].EntityID)
	assert.Equal(t, id, *entries[0].EntityID)
}

func TestAudit_VerifyGetsItsOwnVerb(t *testing.T) {
	router, db := newAuditRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+id.String()+"/verify", strings.NewReader(`{"accepted":true}`))
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := recordedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Equal(t, "verify", entries[0].Action)
	assert.Equal(t, "Document", entries[0].EntityType)
}

func TestAudit_SkipsReadsLoginAndFailures(t *testing.T) {
	status := http.StatusOK
	router, db := newAuditRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	// GET requests are never recorded
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))

	// Login carries credentials and is skipped by path
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"pw"}`)))

	// Failed mutations leave no trace
	status = http.StatusUnprocessableEntity
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(`{}`)))

	assert.Empty(t, recordedEntries(t, db))
}

func TestAudit_ScrubsCredentialFields(t *testing.T) {
	router, db := newAuditRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	body := `{"fullName":"New Hire","password":"hunter2","currentPassword":"hunter1","newPassword":"hunter3"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := recordedEntries(t, db)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Details, "New Hire")
	assert.NotContains(t, entries[0].Details, "hunter2")
	assert.NotContains(t, entries[0].Details, "hunter1")
	assert.NotContains(t, entries[0].Details, "hunter3")
	assert.NotContains(t, entries[0].Details, "password")
}
