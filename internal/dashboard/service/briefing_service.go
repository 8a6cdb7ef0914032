package service

import (
	"context"
	"errors"
	"fmt"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/ratelimit"
	"golang-market-briefing/pkg/utils"
)

// BriefingService turns a market summary into a prose briefing.
type BriefingService interface {
	// GenerateBriefing makes at most one completion request and never returns
	// an error; failures are reported in the result.
	GenerateBriefing(ctx context.Context, marketSummary, credential string) entity.BriefingResult
	GenerateBriefingWithHeadlines(ctx context.Context, marketSummary string, headlines []entity.NewsItem, credential string) entity.BriefingResult
}

type briefingService struct {
	cfg          *config.Config
	logger       *logger.Logger
	resolver     ModelResolver
	completion   repository.CompletionRepository
	catalog      repository.ModelCatalogRepository
	tokenLimiter *ratelimit.TokenLimiter
}

// NewBriefingService creates a new BriefingService. catalog may be nil, in
// which case prompt tokens are not counted against the per-minute budget.
func NewBriefingService(cfg *config.Config, log *logger.Logger, resolver ModelResolver, completion repository.CompletionRepository, catalog repository.ModelCatalogRepository) BriefingService {
	return &briefingService{
		cfg:          cfg,
		logger:       log,
		resolver:     resolver,
		completion:   completion,
		catalog:      catalog,
		tokenLimiter: ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
	}
}

func (s *briefingService) GenerateBriefing(ctx context.Context, marketSummary, credential string) entity.BriefingResult {
	return s.GenerateBriefingWithHeadlines(ctx, marketSummary, nil, credential)
}

func (s *briefingService) GenerateBriefingWithHeadlines(ctx context.Context, marketSummary string, headlines []entity.NewsItem, credential string) entity.BriefingResult {
	var (
		result  entity.BriefingResult
		modelID string
	)
	err := utils.Safe(func() error {
		result = s.generate(ctx, repository.BuildBriefingPrompt(marketSummary, headlines), credential, &modelID)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Briefing generation panicked", logger.StringField("model", modelID), logger.ErrorField(err))
		return entity.BriefingFailure(modelID, fmt.Sprintf("briefing generation failed: %v", err))
	}
	return result
}

// generate records the resolved model in modelID as soon as it is known.
func (s *briefingService) generate(ctx context.Context, prompt, credential string, modelID *string) entity.BriefingResult {
	model, err := s.resolver.ResolveModel(ctx, credential)
	if model == nil {
		if err == nil {
			err = ErrNoTextModel
		}
		s.logger.WarnContext(ctx, "No model resolved for briefing", logger.ErrorField(err))
		return entity.BriefingFailure("", fmt.Sprintf("could not select a model: %v", err))
	}
	*modelID = model.ID

	s.waitForTokenBudget(ctx, credential, model.ID, prompt)

	reqCtx := ctx
	if s.cfg.Gemini.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.cfg.Gemini.Timeout)
		defer cancel()
	}

	text, err := s.completion.GenerateContent(reqCtx, credential, model.ID, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "Briefing request failed", logger.StringField("model", model.ID), logger.ErrorField(err))
		return entity.BriefingFailure(model.ID, describeCompletionError(err))
	}

	s.logger.InfoContext(ctx, "Briefing generated", logger.StringField("model", model.ID), logger.IntField("chars", len(text)))
	return entity.BriefingResult{
		Status:    entity.BriefingStatusSuccess,
		ModelUsed: model.ID,
		Text:      text,
	}
}

// waitForTokenBudget is best effort: a failed count never blocks the request.
func (s *briefingService) waitForTokenBudget(ctx context.Context, credential, modelID, prompt string) {
	if s.catalog == nil || s.cfg.Gemini.MaxTokenPerMinute <= 0 {
		return
	}
	tokens, err := s.catalog.CountTokens(ctx, credential, modelID, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to count prompt tokens", logger.ErrorField(err))
		return
	}
	s.logger.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", tokens),
		logger.IntField("remaining", s.tokenLimiter.GetRemaining()),
	)
	if err := s.tokenLimiter.Wait(ctx, tokens); err != nil {
		s.logger.WarnContext(ctx, "Failed to wait for token limit", logger.ErrorField(err))
	}
}

func describeCompletionError(err error) string {
	var statusErr *repository.APIStatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("briefing request failed with status %d: %s", statusErr.StatusCode, statusErr.Body)
	case errors.Is(err, repository.ErrEmptyCandidate), errors.Is(err, repository.ErrMalformedResponse):
		return fmt.Sprintf("briefing response could not be read: %v", err)
	default:
		return fmt.Sprintf("briefing request failed: %v", err)
	}
}
