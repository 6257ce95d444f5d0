package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/domain/models"
	domainSvc "github.com/docaura/backend/internal/domain/services"
	"github.com/docaura/backend/internal/llm"
	"github.com/docaura/backend/internal/prompts"
	"github.com/docaura/backend/internal/utils"
)

// analysisService implements the AnalysisService interface
type analysisService struct {
	client  *llm.Client
	prompts *prompts.Registry
	logger  *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(client *llm.Client, registry *prompts.Registry, logger *slog.Logger) domainSvc.AnalysisService {
	return &analysisService{
		client:  client,
		prompts: registry,
		logger:  logger,
	}
}

// modelAnalysis is the JSON shape the model is instructed to return
type modelAnalysis struct {
	Summary        string   `json:"summary"`
	Keywords       []string `json:"keywords"`
	Sentiment      string   `json:"sentiment"`
	SentimentScore float64  `json:"sentimentScore"`
	KeyTopics      []string `json:"keyTopics"`
}

// Analyze scores sanitized text: word count and reading time are computed
// locally, the rest comes from the model. A malformed model reply degrades
// to a neutral fallback instead of failing the request.
func (s *analysisService) Analyze(ctx context.Context, content string) (*models.AnalysisResult, error) {
	task, err := s.prompts.Get("analyze")
	if err != nil {
		return nil, err
	}

	wordCount := utils.CountWords(content)
	readingTime := readingTimeMinutes(wordCount)

	// Content beyond the budget is not sent; very long documents are
	// summarized from a prefix only
	prompt := content
	if len(prompt) > task.MaxContentChars {
		prompt = prompt[:task.MaxContentChars]
	}

	reply, err := s.client.Complete(ctx, task.Model, task.System, "Analyze: "+prompt)
	if err != nil {
		return nil, err
	}

	result := parseModelReply(reply, s.logger)
	if result == nil {
		// The provider answered 2xx with nothing usable in it
		s.logger.Error("AI gateway returned empty reply content")
		return nil, &domain.UpstreamError{
			Message: "AI analysis failed",
			Status:  http.StatusInternalServerError,
		}
	}

	result.WordCount = wordCount
	result.ReadingTimeMinutes = readingTime
	return result, nil
}

// parseModelReply parses the model's untrusted reply. The reply may be
// wrapped in a fenced code block; the fence is stripped before parsing.
// Unparsable content degrades to the raw text as summary with neutral
// sentiment. An empty reply returns nil.
func parseModelReply(reply string, logger *slog.Logger) *models.AnalysisResult {
	if strings.TrimSpace(reply) == "" {
		return nil
	}

	jsonStr := stripCodeFence(reply)

	var parsed modelAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		logger.Warn("model reply was not valid JSON, using fallback", "error", err)
		summary := reply
		if len(summary) > config.FallbackSummaryLength {
			summary = summary[:config.FallbackSummaryLength]
		}
		return &models.AnalysisResult{
			Summary:        summary,
			Keywords:       []string{},
			Sentiment:      "neutral",
			SentimentScore: 0,
			KeyTopics:      []string{},
		}
	}

	if parsed.Keywords == nil {
		parsed.Keywords = []string{}
	}
	if parsed.KeyTopics == nil {
		parsed.KeyTopics = []string{}
	}
	if parsed.Sentiment == "" {
		parsed.Sentiment = "neutral"
	}

	return &models.AnalysisResult{
		Summary:        parsed.Summary,
		Keywords:       parsed.Keywords,
		Sentiment:      parsed.Sentiment,
		SentimentScore: parsed.SentimentScore,
		KeyTopics:      parsed.KeyTopics,
	}
}

// stripCodeFence extracts the body of a ```/```json fenced block if the
// reply contains one
func stripCodeFence(reply string) string {
	start := strings.Index(reply, "```")
	if start == -1 {
		return strings.TrimSpace(reply)
	}

	body := reply[start+3:]
	// Skip an optional language tag on the fence
	body = strings.TrimPrefix(body, "json")

	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// readingTimeMinutes estimates reading time, floored at one minute
func readingTimeMinutes(wordCount int) int {
	minutes := (wordCount + config.WordsPerMinute - 1) / config.WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
