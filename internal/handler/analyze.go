package handler

import (
	"log/slog"
	"net/http"

	"github.com/docaura/backend/internal/domain/models"
	domainSvc "github.com/docaura/backend/internal/domain/services"
	"github.com/docaura/backend/internal/httputil"
	"github.com/docaura/backend/internal/service"
)

// AnalyzeHandler serves the stateless text scoring endpoint. It never
// persists a document or analysis row; it is distinct from the
// authenticated app's document pipeline.
type AnalyzeHandler struct {
	analyzer domainSvc.AnalysisService
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer domainSvc.AnalysisService, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// analyzeResponse is the wire shape of a successful analysis
type analyzeResponse struct {
	Title string `json:"title"`
	models.AnalysisResult
}

// Analyze handles POST /analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var input service.AnalyzeInput
	if err := httputil.ParseJSON(w, r, &input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	content, title, err := service.ValidateAnalyzeInput(&input)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), content)
	if err != nil {
		h.logger.Error("analysis failed",
			"error", err,
			"request_id", httputil.GetRequestID(r),
		)
		httputil.RespondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, analyzeResponse{
		Title:          title,
		AnalysisResult: *result,
	})
}
