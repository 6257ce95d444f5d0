package models

import "time"

// Document is tenant-scoped file metadata. The gateway only ever reads
// documents; they are created by the authenticated app's upload pipeline.
type Document struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	FileType       string    `json:"file_type"`
	FileSize       int64     `json:"file_size"`
	StoragePath    string    `json:"storage_path"`
	UploadedBy     *string   `json:"uploaded_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DocumentSummary is the minimal projection returned by the list endpoint.
type DocumentSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentAnalysis is an immutable snapshot of one AI analysis run over a
// document. Re-analysis creates a new row with a higher version; rows are
// never mutated. Callers read newest-first by version.
type DocumentAnalysis struct {
	ID                 string    `json:"id"`
	DocumentID         string    `json:"document_id"`
	OrganizationID     string    `json:"organization_id"`
	Summary            *string   `json:"summary"`
	Keywords           []string  `json:"keywords"`
	Sentiment          *string   `json:"sentiment"`
	SentimentScore     *float64  `json:"sentiment_score"`
	KeyTopics          []string  `json:"key_topics"`
	WordCount          *int      `json:"word_count"`
	ReadingTimeMinutes *int      `json:"reading_time_minutes"`
	Version            int       `json:"version"`
	AnalyzedAt         time.Time `json:"analyzed_at"`
	CreatedAt          time.Time `json:"created_at"`
}
