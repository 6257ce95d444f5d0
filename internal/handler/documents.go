package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
	domainSvc "github.com/docaura/backend/internal/domain/services"
	"github.com/docaura/backend/internal/httputil"
	"github.com/docaura/backend/internal/utils"
)

// DocumentHandler serves tenant-scoped document reads
type DocumentHandler struct {
	docs   domainSvc.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs domainSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:   docs,
		logger: logger,
	}
}

// ListDocuments handles GET /documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)
	if ident == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Missing API key")
		return
	}

	documents, err := h.docs.ListDocuments(r.Context(), ident.Key.OrganizationID)
	if err != nil {
		h.logger.Error("failed to list documents",
			"error", err,
			"organization_id", ident.Key.OrganizationID,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": documents,
	})
}

// GetDocument handles GET /documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ident := httputil.GetIdentity(r)
	if ident == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Missing API key")
		return
	}

	// Malformed identifiers are rejected before any store lookup
	id := r.PathValue("id")
	if !utils.IsCanonicalUUID(id) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, analyses, err := h.docs.GetDocument(r.Context(), id, ident.Key.OrganizationID)
	if err != nil {
		// Another tenant's document is reported exactly like a missing one
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Document not found")
			return
		}
		h.logger.Error("failed to get document",
			"error", err,
			"document_id", id,
			"organization_id", ident.Key.OrganizationID,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, documentResponse{
		Document: doc,
		Analyses: analyses,
	})
}

// documentResponse is the wire shape of a single-document read
type documentResponse struct {
	Document *models.Document          `json:"document"`
	Analyses []models.DocumentAnalysis `json:"analyses"`
}
