package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/taxdesk/backoffice-api/internal/service"
	"go.uber.org/zap"
)

// ActivityHandler exposes the activity log. Entries are written by the
// audit middleware, so the handler surface is read-only.
type ActivityHandler struct {
	activityService *service.ActivityLogService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityLogService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// History views on an entity's detail page cap at the last 50 entries
const entityHistoryLimit = 50

// List godoc
// @Summary List activity log entries
// @Tags Activity
// @Produce json
// @Param search query string false "Match against user email, action or entity type"
// @Param entityType query string false "Restrict to one entity type (requires entityId)"
// @Param entityId query string false "Restrict to one entity id"
// @Success 200 {array} domain.ActivityLog
// @Security BearerAuth
// @Router /activity [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if entityType := query.Get("entityType"); entityType != "" {
		entityID, err := uuid.Parse(query.Get("entityId"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "entityId must be a valid UUID")
			return
		}
		entries, err := h.activityService.ListForEntity(r.Context(), entityType, entityID, entityHistoryLimit)
		if err != nil {
			h.logger.Error("failed to list entity activity", zap.Error(err))
			handleServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.activityService.List(r.Context(), query.Get("search"))
	if err != nil {
		h.logger.Error("failed to list activity log", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Get godoc
// @Summary Get one activity log entry
// @Tags Activity
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.ActivityLog
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /activity/{id} [get]
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	entry, err := h.activityService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
