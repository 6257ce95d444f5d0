package service

import (
	"context"
	"log/slog"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/domain/models"
	"github.com/docaura/backend/internal/domain/repositories"
	domainSvc "github.com/docaura/backend/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo repositories.DocumentRepository
	logger  *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo repositories.DocumentRepository, logger *slog.Logger) domainSvc.DocumentService {
	return &documentService{
		docRepo: docRepo,
		logger:  logger,
	}
}

// ListDocuments returns the tenant's newest documents, capped at the hard
// list ceiling
func (s *documentService) ListDocuments(ctx context.Context, organizationID string) ([]models.DocumentSummary, error) {
	return s.docRepo.ListByOrganization(ctx, organizationID, config.DocumentListLimit)
}

// GetDocument returns one tenant-scoped document and its analysis history,
// newest version first. Reads are side-effect-free: two calls with no
// intervening analysis return the same history.
func (s *documentService) GetDocument(ctx context.Context, id, organizationID string) (*models.Document, []models.DocumentAnalysis, error) {
	doc, err := s.docRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return nil, nil, err
	}

	analyses, err := s.docRepo.ListAnalyses(ctx, doc.ID)
	if err != nil {
		return nil, nil, err
	}

	return doc, analyses, nil
}
