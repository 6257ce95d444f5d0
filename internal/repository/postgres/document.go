package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
	"github.com/docaura/backend/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListByOrganization returns up to limit documents for the organization,
// newest first, minimal projection
func (r *PostgresDocumentRepository) ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, name, file_type, created_at
		FROM %s
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Documents)

	rows, err := r.pool.Query(ctx, query, organizationID, limit)
	if err != nil {
		logIfMissingTable(r.logger, err, r.tables.Documents)
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	documents := []models.DocumentSummary{}
	for rows.Next() {
		var doc models.DocumentSummary
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.FileType, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return documents, nil
}

// GetByID retrieves a document scoped to the organization. A document
// belonging to another tenant is reported as not found, never forbidden.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, organizationID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, organization_id, name, file_type, file_size, storage_path,
		       uploaded_by, created_at, updated_at
		FROM %s
		WHERE id = $1 AND organization_id = $2
	`, r.tables.Documents)

	var doc models.Document
	err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&doc.ID,
		&doc.OrganizationID,
		&doc.Name,
		&doc.FileType,
		&doc.FileSize,
		&doc.StoragePath,
		&doc.UploadedBy,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		logIfMissingTable(r.logger, err, r.tables.Documents)
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListAnalyses returns all analysis versions for a document, newest first
func (r *PostgresDocumentRepository) ListAnalyses(ctx context.Context, documentID string) ([]models.DocumentAnalysis, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, organization_id, summary, keywords, sentiment,
		       sentiment_score, key_topics, word_count, reading_time_minutes,
		       version, analyzed_at, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY version DESC
	`, r.tables.DocumentAnalyses)

	rows, err := r.pool.Query(ctx, query, documentID)
	if err != nil {
		logIfMissingTable(r.logger, err, r.tables.DocumentAnalyses)
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []models.DocumentAnalysis{}
	for rows.Next() {
		var a models.DocumentAnalysis
		if err := rows.Scan(
			&a.ID,
			&a.DocumentID,
			&a.OrganizationID,
			&a.Summary,
			&a.Keywords,
			&a.Sentiment,
			&a.SentimentScore,
			&a.KeyTopics,
			&a.WordCount,
			&a.ReadingTimeMinutes,
			&a.Version,
			&a.AnalyzedAt,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	return analyses, nil
}
