package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/view"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	logger             *zap.Logger
}

func NewAppointmentHandler(appointmentService *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// List godoc
// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param search query string false "Match against title, type, location or participant names"
// @Success 200 {array} domain.Appointment
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list appointments", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appointments)
}

// Get godoc
// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	appointment, err := h.appointmentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appointment)
}

// Detail godoc
// @Summary Get an appointment detail view
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {array} view.Field
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /appointments/{id}/detail [get]
func (h *AppointmentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	appointment, err := h.appointmentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view.AppointmentDetail(appointment))
}

// Create godoc
// @Summary Schedule an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment body domain.AppointmentRequest true "Appointment fields"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.AppointmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	appointment, err := h.appointmentService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, appointment)
}

// Update godoc
// @Summary Update an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param appointment body domain.AppointmentRequest true "Appointment fields"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.AppointmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	appointment, err := h.appointmentService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, appointment)
}

// Delete godoc
// @Summary Delete an appointment
// @Tags Appointments
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.appointmentService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
