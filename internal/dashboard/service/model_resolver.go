package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/dashboard/repository"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"
	"golang-market-briefing/pkg/utils"
)

// ErrNoTextModel is returned when no model able to generate text is available.
var ErrNoTextModel = errors.New("no text generation model available")

// ModelResolver picks the model used for a briefing.
type ModelResolver interface {
	// ResolveModel returns nil and a reason when no usable model exists.
	ResolveModel(ctx context.Context, credential string) (*entity.ModelDescriptor, error)
}

// TierClassifier maps model ids to tiers by case-insensitive substring patterns.
// Lightweight patterns are checked first.
type TierClassifier struct {
	Lightweight []string
	General     []string
}

func (c TierClassifier) Classify(modelID string) entity.ModelTier {
	id := strings.ToLower(modelID)
	for _, p := range c.Lightweight {
		if p != "" && strings.Contains(id, strings.ToLower(p)) {
			return entity.ModelTierLightweight
		}
	}
	for _, p := range c.General {
		if p != "" && strings.Contains(id, strings.ToLower(p)) {
			return entity.ModelTierGeneral
		}
	}
	return entity.ModelTierUnknown
}

// RankModels drops models that cannot generate text and orders the rest by
// tier, highest first. Ties keep listing order.
func RankModels(models []entity.ModelDescriptor, classifier TierClassifier) []entity.ModelDescriptor {
	ranked := make([]entity.ModelDescriptor, 0, len(models))
	for _, m := range models {
		if !m.SupportsTextGeneration {
			continue
		}
		m.Tier = classifier.Classify(m.ID)
		ranked = append(ranked, m)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Tier > ranked[j].Tier })
	return ranked
}

// NewModelResolver returns the resolver selected by gemini.resolution.
func NewModelResolver(cfg *config.Config, log *logger.Logger, catalog repository.ModelCatalogRepository) ModelResolver {
	classifier := TierClassifier{
		Lightweight: cfg.Gemini.LightweightPatterns,
		General:     cfg.Gemini.GeneralPatterns,
	}
	if cfg.Gemini.Resolution == "static" {
		return &staticModelResolver{
			models:     cfg.Gemini.Models,
			catalog:    catalog,
			classifier: classifier,
			logger:     log,
		}
	}
	return &discoveryModelResolver{
		catalog:    catalog,
		classifier: classifier,
		logger:     log,
	}
}

type staticModelResolver struct {
	models     []string
	catalog    repository.ModelCatalogRepository
	classifier TierClassifier
	logger     *logger.Logger
}

func (r *staticModelResolver) ResolveModel(ctx context.Context, credential string) (*entity.ModelDescriptor, error) {
	switch len(r.models) {
	case 0:
		return nil, fmt.Errorf("%w: no models configured", ErrNoTextModel)
	case 1:
		id := strings.TrimPrefix(r.models[0], "models/")
		return &entity.ModelDescriptor{
			ID:                     id,
			SupportsTextGeneration: true,
			Tier:                   r.classifier.Classify(id),
		}, nil
	}

	var probeErrs []error
	for _, id := range r.models {
		var m *entity.ModelDescriptor
		err := utils.Safe(func() error {
			var err error
			m, err = r.catalog.GetModel(ctx, credential, strings.TrimPrefix(id, "models/"))
			return err
		})
		if err != nil {
			r.logger.WarnContext(ctx, "Configured model probe failed", logger.StringField("model", id), logger.ErrorField(err))
			probeErrs = append(probeErrs, err)
			continue
		}
		if m == nil || !m.SupportsTextGeneration {
			continue
		}
		m.Tier = r.classifier.Classify(m.ID)
		return m, nil
	}
	if len(probeErrs) == 0 {
		return nil, fmt.Errorf("%w: none of %d configured models supports text generation", ErrNoTextModel, len(r.models))
	}
	return nil, fmt.Errorf("%w: none of %d configured models is usable: %w", ErrNoTextModel, len(r.models), errors.Join(probeErrs...))
}

type discoveryModelResolver struct {
	catalog    repository.ModelCatalogRepository
	classifier TierClassifier
	logger     *logger.Logger
}

func (r *discoveryModelResolver) ResolveModel(ctx context.Context, credential string) (*entity.ModelDescriptor, error) {
	var models []entity.ModelDescriptor
	err := utils.Safe(func() error {
		var err error
		models, err = r.catalog.ListModels(ctx, credential)
		return err
	})
	if err != nil {
		r.logger.WarnContext(ctx, "Model discovery failed", logger.ErrorField(err))
		return nil, fmt.Errorf("model discovery failed: %w", err)
	}

	ranked := RankModels(models, r.classifier)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: %d models listed, none supports text generation", ErrNoTextModel, len(models))
	}

	chosen := ranked[0]
	r.logger.InfoContext(ctx, "Model resolved",
		logger.StringField("model", chosen.ID),
		logger.StringField("tier", chosen.Tier.String()),
		logger.IntField("candidates", len(ranked)),
	)
	return &chosen, nil
}
