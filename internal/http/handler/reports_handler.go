package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type ReportsHandler struct {
	reportsService *service.ReportsService
	logger         *zap.Logger
}

func NewReportsHandler(reportsService *service.ReportsService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reportsService: reportsService,
		logger:         logger,
	}
}

// Overview godoc
// @Summary Get the reports overview
// @Description Monthly revenue and return volumes, status breakdown and top agents.
// @Tags Reports
// @Produce json
// @Success 200 {object} service.ReportsOverview
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportsService.GetOverview(r.Context())
	if err != nil {
		h.logger.Error("failed to build reports overview", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
