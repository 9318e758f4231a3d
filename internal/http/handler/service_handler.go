package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/view"
	"go.uber.org/zap"
)

type ServiceHandler struct {
	catalogService *service.ServiceCatalogService
	logger         *zap.Logger
}

func NewServiceHandler(catalogService *service.ServiceCatalogService, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List godoc
// @Summary List catalog services
// @Tags Services
// @Produce json
// @Param search query string false "Match against name, category or description"
// @Success 200 {array} domain.Service
// @Security BearerAuth
// @Router /services [get]
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, services)
}

// Get godoc
// @Summary Get a catalog service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} domain.Service
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	svc, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

// Detail godoc
// @Summary Get a catalog service detail view
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {array} view.Field
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /services/{id}/detail [get]
func (h *ServiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	svc, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view.ServiceDetail(svc))
}

// Create godoc
// @Summary Create a catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Param service body domain.ServiceRequest true "Service fields"
// @Success 201 {object} domain.Service
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /services [post]
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	svc, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, svc)
}

// Update godoc
// @Summary Update a catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body domain.ServiceRequest true "Service fields"
// @Success 200 {object} domain.Service
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.ServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	svc, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, svc)
}

// Delete godoc
// @Summary Delete a catalog service
// @Tags Services
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
