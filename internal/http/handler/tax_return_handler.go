package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/view"
	"go.uber.org/zap"
)

type TaxReturnHandler struct {
	taxReturnService *service.TaxReturnService
	logger           *zap.Logger
}

func NewTaxReturnHandler(taxReturnService *service.TaxReturnService, logger *zap.Logger) *TaxReturnHandler {
	return &TaxReturnHandler{
		taxReturnService: taxReturnService,
		logger:           logger,
	}
}

// List godoc
// @Summary List tax returns
// @Tags TaxReturns
// @Produce json
// @Param search query string false "Match against client name, return type or tax year"
// @Success 200 {array} domain.TaxReturn
// @Security BearerAuth
// @Router /tax-returns [get]
func (h *TaxReturnHandler) List(w http.ResponseWriter, r *http.Request) {
	taxReturns, err := h.taxReturnService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list tax returns", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, taxReturns)
}

// Get godoc
// @Summary Get a tax return
// @Tags TaxReturns
// @Produce json
// @Param id path string true "Tax return ID"
// @Success 200 {object} domain.TaxReturn
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tax-returns/{id} [get]
func (h *TaxReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	taxReturn, err := h.taxReturnService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, taxReturn)
}

// Detail godoc
// @Summary Get a tax return detail view
// @Tags TaxReturns
// @Produce json
// @Param id path string true "Tax return ID"
// @Success 200 {array} view.Field
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tax-returns/{id}/detail [get]
func (h *TaxReturnHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	taxReturn, err := h.taxReturnService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view.TaxReturnDetail(taxReturn))
}

// Create godoc
// @Summary Create a tax return
// @Tags TaxReturns
// @Accept json
// @Produce json
// @Param taxReturn body domain.TaxReturnRequest true "Tax return fields"
// @Success 201 {object} domain.TaxReturn
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /tax-returns [post]
func (h *TaxReturnHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TaxReturnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	taxReturn, err := h.taxReturnService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, taxReturn)
}

// Update godoc
// @Summary Update a tax return
// @Tags TaxReturns
// @Accept json
// @Produce json
// @Param id path string true "Tax return ID"
// @Param taxReturn body domain.TaxReturnRequest true "Tax return fields"
// @Success 200 {object} domain.TaxReturn
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tax-returns/{id} [put]
func (h *TaxReturnHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.TaxReturnRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	taxReturn, err := h.taxReturnService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, taxReturn)
}

// Delete godoc
// @Summary Delete a tax return
// @Tags TaxReturns
// @Param id path string true "Tax return ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /tax-returns/{id} [delete]
func (h *TaxReturnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.taxReturnService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
