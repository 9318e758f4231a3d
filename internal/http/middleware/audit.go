package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// AuditConfig holds configuration for the activity trail middleware
type AuditConfig struct {
	// SkipPaths contains paths that should not be recorded
	SkipPaths []string
	// SkipMethods contains HTTP methods that should not be recorded
	SkipMethods []string
}

// DefaultAuditConfig returns default audit configuration
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/swagger",
			"/api/v1/auth/login",
		},
		SkipMethods: []string{
			http.MethodGet,
			http.MethodOptions,
			http.MethodHead,
		},
	}
}

// AuditMiddleware records successful mutating requests into the activity log
type AuditMiddleware struct {
	activityLog *service.ActivityLogService
	config      *AuditConfig
	logger      *zap.Logger
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(activityLog *service.ActivityLogService, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		activityLog: activityLog,
		config:      config,
		logger:      logger,
	}
}

// Audit returns middleware that appends activity log entries for mutations
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.shouldRecord(r) {
			next.ServeHTTP(w, r)
			return
		}

		var requestBody []byte
		if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		rw := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 200 && rw.statusCode < 300 {
			m.record(r, requestBody)
		}
	})
}

func (m *AuditMiddleware) shouldRecord(r *http.Request) bool {
	for _, method := range m.config.SkipMethods {
		if r.Method == method {
			return false
		}
	}
	path := r.URL.Path
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}
	return true
}

func (m *AuditMiddleware) record(r *http.Request, requestBody []byte) {
	entityType, entityID := m.extractEntityInfo(r)
	action := m.resolveAction(r)
	if action == "" {
		return
	}

	entry := &domain.ActivityLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    sanitizeDetails(requestBody),
		IPAddress:  clientIP(r),
	}
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		if userCtx.UserID != uuid.Nil {
			id := userCtx.UserID
			entry.UserID = &id
		}
		entry.UserEmail = userCtx.Email
	}

	// Detached context: the entry outlives the request
	m.activityLog.Record(context.WithoutCancel(r.Context()), entry)
}

// resolveAction maps the request to an activity verb. Side operations like
// document verification get their own verb instead of a generic update.
func (m *AuditMiddleware) resolveAction(r *http.Request) string {
	path := r.URL.Path
	switch {
	case strings.HasSuffix(path, "/verify"):
		return "verify"
	case strings.HasSuffix(path, "/upload"):
		return "upload"
	}

	switch r.Method {
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// extractEntityInfo pulls the entity type and id from the chi route
func (m *AuditMiddleware) extractEntityInfo(r *http.Request) (string, *uuid.UUID) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return parseEntityFromPath(r.URL.Path), nil
	}

	var entityID *uuid.UUID
	if idStr := routeCtx.URLParam("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			entityID = &id
		}
	}

	return parseEntityFromPath(routeCtx.RoutePattern()), entityID
}

func parseEntityFromPath(path string) string {
	entityMap := map[string]string{
		"clients":      "Client",
		"agents":       "Agent",
		"tax-returns":  "TaxReturn",
		"documents":    "Document",
		"payments":     "Payment",
		"appointments": "Appointment",
		"services":     "Service",
		"staff":        "Staff",
		"auth":         "Staff", // self-service account edits land on the staff row
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if entityType, ok := entityMap[part]; ok {
			return entityType
		}
	}
	return "Unknown"
}

// sanitizeDetails re-encodes the request body with credential fields removed
func sanitizeDetails(requestBody []byte) string {
	if len(requestBody) == 0 {
		return ""
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(requestBody, &parsed); err != nil {
		return ""
	}
	// Substring match so variants like currentPassword are caught too
	for key := range parsed {
		lower := strings.ToLower(key)
		for _, cred := range []string{"password", "secret", "token", "apikey"} {
			if strings.Contains(lower, cred) {
				delete(parsed, key)
				break
			}
		}
	}

	cleaned, err := json.Marshal(parsed)
	if err != nil {
		return ""
	}
	return string(cleaned)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i > 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// responseCapture wraps ResponseWriter to capture the status code
type responseCapture struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseCapture) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
