package services

import (
	"context"

	"github.com/docaura/backend/internal/domain/models"
)

// Gatekeeper admits or rejects a request presented with a raw API key.
// Admission runs the full chain: format screen, hash lookup, plan gate,
// quota gate, then the optimistic usage pre-charge.
type Gatekeeper interface {
	Admit(ctx context.Context, rawKey string) (*models.Identity, error)
}

// AnalysisService turns sanitized text into a structured analysis.
type AnalysisService interface {
	Analyze(ctx context.Context, content string) (*models.AnalysisResult, error)
}

// DocumentService provides tenant-scoped document reads.
type DocumentService interface {
	ListDocuments(ctx context.Context, organizationID string) ([]models.DocumentSummary, error)
	GetDocument(ctx context.Context, id, organizationID string) (*models.Document, []models.DocumentAnalysis, error)
}
