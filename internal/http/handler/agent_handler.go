package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/view"
	"go.uber.org/zap"
)

type AgentHandler struct {
	agentService *service.AgentService
	logger       *zap.Logger
}

func NewAgentHandler(agentService *service.AgentService, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger,
	}
}

// List godoc
// @Summary List agents
// @Tags Agents
// @Produce json
// @Param search query string false "Match against name, email, license or specialization"
// @Success 200 {array} domain.Agent
// @Security BearerAuth
// @Router /agents [get]
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list agents", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agents)
}

// Get godoc
// @Summary Get an agent
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} domain.Agent
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /agents/{id} [get]
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	agent, err := h.agentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agent)
}

// Detail godoc
// @Summary Get an agent detail view
// @Tags Agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {array} view.Field
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /agents/{id}/detail [get]
func (h *AgentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	agent, err := h.agentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view.AgentDetail(agent))
}

// Create godoc
// @Summary Create an agent
// @Tags Agents
// @Accept json
// @Produce json
// @Param agent body domain.AgentRequest true "Agent fields"
// @Success 201 {object} domain.Agent
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /agents [post]
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.AgentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	agent, err := h.agentService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, agent)
}

// Update godoc
// @Summary Update an agent
// @Tags Agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param agent body domain.AgentRequest true "Agent fields"
// @Success 200 {object} domain.Agent
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /agents/{id} [put]
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.AgentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	agent, err := h.agentService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agent)
}

// Delete godoc
// @Summary Delete an agent
// @Tags Agents
// @Param id path string true "Agent ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /agents/{id} [delete]
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.agentService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
