package handler

import (
	"io"
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"github.com/taxdesk/backoffice-api/internal/view"
	"go.uber.org/zap"
)

// maxUploadSize caps document uploads at 25 MB
const maxUploadSize = 25 << 20

type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// List godoc
// @Summary List documents
// @Tags Documents
// @Produce json
// @Param search query string false "Match against name, type or client name"
// @Success 200 {array} domain.Document
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	documents, err := h.documentService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("failed to list documents", zap.Error(err))
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, documents)
}

// Get godoc
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} domain.Document
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	document, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, document)
}

// Detail godoc
// @Summary Get a document detail view
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {array} view.Field
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/detail [get]
func (h *DocumentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	document, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view.DocumentDetail(document))
}

// Create godoc
// @Summary Create a document record
// @Tags Documents
// @Accept json
// @Produce json
// @Param document body domain.DocumentRequest true "Document fields"
// @Success 201 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.DocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	document, err := h.documentService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, document)
}

// Update godoc
// @Summary Update a document record
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param document body domain.DocumentRequest true "Document fields"
// @Success 200 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.DocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	document, err := h.documentService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, document)
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.documentService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Verify godoc
// @Summary Verify or reject a document
// @Description Resolves a document review and stamps reviewer and time
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param decision body domain.DocumentVerifyRequest true "Review decision"
// @Success 200 {object} domain.Document
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/verify [post]
func (h *DocumentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req domain.DocumentVerifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	document, err := h.documentService.Verify(r.Context(), id, req.Accepted)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, document)
}

// Upload godoc
// @Summary Upload the document file
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file true "File contents"
// @Success 200 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/upload [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	document, err := h.documentService.UploadFile(
		r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, document)
}

// Download godoc
// @Summary Download the document file
// @Tags Documents
// @Produce application/octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	document, reader, err := h.documentService.DownloadFile(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+document.Name+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed streaming document",
			zap.String("document_id", id.String()),
			zap.Error(err))
	}
}
