package repositories

import (
	"context"

	"github.com/docaura/backend/internal/domain/models"
)

// DocumentRepository provides tenant-scoped read access to documents and
// their analysis history. The gateway never writes either table.
type DocumentRepository interface {
	// ListByOrganization returns up to limit documents belonging to the
	// organization, newest first, minimal projection.
	ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.DocumentSummary, error)

	// GetByID returns the document if and only if it belongs to the
	// organization; otherwise domain.ErrNotFound. Existence of another
	// tenant's document must not be observable.
	GetByID(ctx context.Context, id, organizationID string) (*models.Document, error)

	// ListAnalyses returns all analysis versions for a document, newest
	// version first.
	ListAnalyses(ctx context.Context, documentID string) ([]models.DocumentAnalysis, error)
}
