package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/dto"
	"golang-market-briefing/pkg/common"
	"golang-market-briefing/pkg/logger"

	"golang.org/x/time/rate"
)

var (
	// ErrEmptyCandidate is returned when a 200 response carries no usable text.
	ErrEmptyCandidate = errors.New("response has no candidate text")
	// ErrMalformedResponse is returned when a 200 response is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)

// APIStatusError is returned for any non-200 completion response.
type APIStatusError struct {
	StatusCode int
	Body       string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("received non-OK response from Gemini API: %d - %s", e.StatusCode, e.Body)
}

type geminiRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewGeminiRepository creates a CompletionRepository for the Gemini generateContent endpoint.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger) CompletionRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &geminiRepository{
		client: &http.Client{
			Timeout: cfg.Gemini.Timeout,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

// GenerateContent sends exactly one request. It never retries.
func (r *geminiRepository) GenerateContent(ctx context.Context, credential, modelID, prompt string) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Role: "user", Parts: []dto.Part{{Text: prompt}}}},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s/models/%s:%s",
		strings.TrimRight(r.cfg.Gemini.BaseURL, "/"), r.cfg.Gemini.APIVersion,
		strings.TrimPrefix(modelID, "models/"), common.GeminiGenerateContentMethod)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", credential)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to send request to Gemini API", logger.ErrorField(err), logger.StringField("model", modelID))
		return "", fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var envelope dto.GeminiErrorResponse
		_ = json.Unmarshal(body, &envelope)
		r.logger.ErrorContext(ctx, "Received non-OK response from Gemini API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("status", envelope.Error.Status),
			logger.StringField("model", modelID),
		)
		return "", &APIStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return firstCandidateText(&geminiResp)
}

func firstCandidateText(resp *dto.GeminiAPIResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyCandidate)
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		reason := resp.Candidates[0].FinishReason
		if reason == "" {
			reason = "unspecified"
		}
		return "", fmt.Errorf("%w: no content parts (finish reason %s)", ErrEmptyCandidate, reason)
	}
	text := content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: blank text", ErrEmptyCandidate)
	}
	return text, nil
}
