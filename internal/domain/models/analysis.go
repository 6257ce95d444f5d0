package models

// AnalysisResult is a structured analysis of arbitrary text. WordCount and
// ReadingTimeMinutes are computed locally; the rest comes from the model
// (or the degraded fallback when its reply cannot be parsed).
type AnalysisResult struct {
	WordCount          int      `json:"wordCount"`
	ReadingTimeMinutes int      `json:"readingTimeMinutes"`
	Summary            string   `json:"summary"`
	Keywords           []string `json:"keywords"`
	Sentiment          string   `json:"sentiment"`
	SentimentScore     float64  `json:"sentimentScore"`
	KeyTopics          []string `json:"keyTopics"`
}
