// Package llm wraps the Gemini API behind interfaces.ContentGenerator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/interfaces"
)

// ErrEmptyResponse is returned when the model answers without any text, e.g. a blocked prompt.
var ErrEmptyResponse = errors.New("no response generated from model")

// GeminiService generates schema-constrained JSON with a Gemini model.
type GeminiService struct {
	config  *common.GeminiConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

// Compile-time assertion
var _ interfaces.ContentGenerator = (*GeminiService)(nil)

// NewGeminiService creates a Gemini content generator.
//
// The API key and model are required. A non-empty BaseURL replaces the public
// endpoint, which is how proxies and tests point the client elsewhere.
func NewGeminiService(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required (set GEMINI_API_KEY, LEDGERLINE_GEMINI_API_KEY, or gemini.api_key in config)", common.ErrGeminiNotConfigured)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: Gemini model is required", common.ErrGeminiNotConfigured)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  config,
		logger:  logger,
		client:  client,
		timeout: config.CallTimeout(),
	}

	logger.Info().
		Str("model", config.Model).
		Dur("timeout", service.timeout).
		Msg("Gemini service initialized")

	return service, nil
}

// GenerateJSON sends prompt as the only user message and returns the model's JSON text.
// The response is constrained to application/json matching schema. Each call is bounded
// by the configured timeout and is never retried here.
func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string, schema any) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini service is closed")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(s.config.Temperature),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: schema,
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	logger := common.LoggerFromContext(ctx, s.logger)
	startTime := time.Now()
	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.Model, contents, config)
	if err != nil {
		event := logger.Warn().
			Err(err).
			Str("model", s.config.Model).
			Dur("duration", time.Since(startTime))
		if IsRateLimitError(err) {
			event = event.Bool("rate_limited", true).Dur("retry_delay", ExtractRetryDelay(err))
		}
		event.Msg("Gemini generation failed")
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		reason := blockReason(resp)
		logger.Warn().
			Str("model", s.config.Model).
			Str("reason", reason).
			Msg("Gemini returned no text")
		if reason != "" {
			return "", fmt.Errorf("%w: %s", ErrEmptyResponse, reason)
		}
		return "", ErrEmptyResponse
	}

	logger.Debug().
		Str("model", s.config.Model).
		Int("prompt_length", len(prompt)).
		Int("response_length", len(text)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini generation completed")

	return text, nil
}

// Close releases the client reference. genai.Client holds no resources needing explicit cleanup.
func (s *GeminiService) Close() error {
	s.logger.Debug().Msg("Closing Gemini service")
	s.client = nil
	return nil
}

// responseText concatenates the text parts of the first candidate that has any.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var response strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				response.WriteString(part.Text)
			}
		}
		if response.Len() > 0 {
			break
		}
	}
	return response.String()
}

// blockReason describes why a response carried no text, if the API said so.
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
	}
	for _, candidate := range resp.Candidates {
		if candidate != nil && candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
			return "finish reason: " + string(candidate.FinishReason)
		}
	}
	return ""
}
