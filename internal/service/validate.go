package service

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/docaura/backend/internal/config"
	"github.com/docaura/backend/internal/domain"
	"github.com/docaura/backend/internal/httputil"
	"github.com/docaura/backend/internal/utils"
)

// AnalyzeInput is the untrusted request body of the analyze endpoint.
// OptionalString distinguishes absent, null/wrong-typed and present fields
// so type violations get field-level messages, not a generic JSON error.
type AnalyzeInput struct {
	Content httputil.OptionalString `json:"content"`
	Title   httputil.OptionalString `json:"title"`
}

// ValidateAnalyzeInput normalizes and sanitizes an analyze payload,
// returning the cleaned content and title or a validation error naming the
// violated constraint. It never panics on hostile input.
func ValidateAnalyzeInput(in *AnalyzeInput) (content, title string, err error) {
	if in == nil {
		return "", "", &domain.ValidationError{Message: "Invalid request body"}
	}

	if !in.Content.Present || in.Content.Value == nil {
		return "", "", &domain.ValidationError{Message: "Missing content field"}
	}

	if err := validation.Validate(*in.Content.Value, validation.By(validateContentBounds)); err != nil {
		return "", "", &domain.ValidationError{Message: err.Error()}
	}

	title = "Untitled"
	if in.Title.Present {
		if in.Title.Value == nil {
			return "", "", &domain.ValidationError{Message: "Title must be a string"}
		}
		if err := validation.Validate(*in.Title.Value,
			validation.RuneLength(0, config.MaxTitleLength).
				Error(fmt.Sprintf("Title too long (max %d characters)", config.MaxTitleLength)),
		); err != nil {
			return "", "", &domain.ValidationError{Message: err.Error()}
		}
		title = utils.SanitizeDisplay(*in.Title.Value, config.MaxTitleLength)
		if title == "" {
			title = "Untitled"
		}
	}

	content = utils.StripControl(*in.Content.Value)
	return content, title, nil
}

// validateContentBounds enforces the byte and word caps on content
func validateContentBounds(value interface{}) error {
	content, _ := value.(string)

	if content == "" {
		return errors.New("Content cannot be empty")
	}
	if len(content) > config.MaxContentBytes {
		return errors.New("Content too large (max 100KB)")
	}
	if wordCount := utils.CountWords(content); wordCount > config.MaxContentWords {
		return fmt.Errorf("Content too long (max %d words, received %d)", config.MaxContentWords, wordCount)
	}
	return nil
}

// ValidateAPIKeyFormat screens a presented key before it reaches hashing or
// lookup. Obviously hostile input (quoting, statement separators, comment
// sequences) is rejected outright.
func ValidateAPIKeyFormat(key string) error {
	if len(key) > config.MaxAPIKeyLength {
		return &domain.ValidationError{Message: "Invalid API key format"}
	}
	if strings.ContainsAny(key, `'";`) || strings.Contains(key, "--") {
		return &domain.ValidationError{Message: "Invalid API key format"}
	}
	return nil
}
