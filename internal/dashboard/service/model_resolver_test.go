package service

import (
	"context"
	"errors"
	"testing"

	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierClassifier(t *testing.T) {
	c := TierClassifier{Lightweight: []string{"flash", "lite"}, General: []string{"pro"}}

	assert.Equal(t, entity.ModelTierLightweight, c.Classify("gemini-1.5-flash"))
	assert.Equal(t, entity.ModelTierLightweight, c.Classify("Gemini-2.0-Flash-Lite"))
	assert.Equal(t, entity.ModelTierGeneral, c.Classify("gemini-1.5-pro"))
	assert.Equal(t, entity.ModelTierUnknown, c.Classify("text-bison-001"))
}

func TestRankModels(t *testing.T) {
	c := TierClassifier{Lightweight: []string{"flash"}, General: []string{"pro"}}
	models := []entity.ModelDescriptor{
		{ID: "embedding-001"},
		{ID: "aqa", SupportsTextGeneration: true},
		{ID: "gemini-1.5-pro", SupportsTextGeneration: true},
		{ID: "gemini-1.5-flash", SupportsTextGeneration: true},
		{ID: "gemini-2.0-flash", SupportsTextGeneration: true},
	}

	ranked := RankModels(models, c)
	require.Len(t, ranked, 4)
	assert.Equal(t, "gemini-1.5-flash", ranked[0].ID)
	assert.Equal(t, "gemini-2.0-flash", ranked[1].ID)
	assert.Equal(t, "gemini-1.5-pro", ranked[2].ID)
	assert.Equal(t, "aqa", ranked[3].ID)
}

func TestDiscoveryResolver_PicksLightweightFirst(t *testing.T) {
	catalog := &fakeCatalog{models: []entity.ModelDescriptor{
		{ID: "gemini-1.5-pro", SupportsTextGeneration: true},
		{ID: "gemini-1.5-flash", SupportsTextGeneration: true},
	}}
	resolver := NewModelResolver(newTestConfig(), logger.NewNop(), catalog)

	m, err := resolver.ResolveModel(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", m.ID)
	assert.Equal(t, entity.ModelTierLightweight, m.Tier)
}

func TestDiscoveryResolver_FallsBackToFirstListed(t *testing.T) {
	catalog := &fakeCatalog{models: []entity.ModelDescriptor{
		{ID: "embedding-001"},
		{ID: "text-model-a", SupportsTextGeneration: true},
		{ID: "text-model-b", SupportsTextGeneration: true},
	}}
	resolver := NewModelResolver(newTestConfig(), logger.NewNop(), catalog)

	m, err := resolver.ResolveModel(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "text-model-a", m.ID)
}

func TestDiscoveryResolver_UnreachableReturnsNilEveryTime(t *testing.T) {
	catalog := &fakeCatalog{listErr: errors.New("dial tcp: connection refused")}
	resolver := NewModelResolver(newTestConfig(), logger.NewNop(), catalog)

	for i := 0; i < 2; i++ {
		m, err := resolver.ResolveModel(context.Background(), "key")
		assert.Nil(t, m)
		assert.Error(t, err)
	}
	assert.Equal(t, 2, catalog.listCalls)
}

func TestDiscoveryResolver_NoTextModels(t *testing.T) {
	catalog := &fakeCatalog{models: []entity.ModelDescriptor{{ID: "embedding-001"}}}
	resolver := NewModelResolver(newTestConfig(), logger.NewNop(), catalog)

	m, err := resolver.ResolveModel(context.Background(), "key")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrNoTextModel))
}

func TestStaticResolver_SingleModelNeedsNoNetwork(t *testing.T) {
	cfg := newTestConfig()
	cfg.Gemini.Resolution = "static"
	cfg.Gemini.Models = []string{"models/gemini-1.5-flash"}
	catalog := &fakeCatalog{listErr: errors.New("unreachable")}
	resolver := NewModelResolver(cfg, logger.NewNop(), catalog)

	m, err := resolver.ResolveModel(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", m.ID)
	assert.Equal(t, 0, catalog.listCalls)
	assert.Empty(t, catalog.getCalls)
}

func TestStaticResolver_ProbesInOrder(t *testing.T) {
	cfg := newTestConfig()
	cfg.Gemini.Resolution = "static"
	cfg.Gemini.Models = []string{"gemini-retired", "embedding-001", "gemini-1.5-pro", "gemini-1.5-flash"}
	catalog := &fakeCatalog{models: []entity.ModelDescriptor{
		{ID: "embedding-001"},
		{ID: "gemini-1.5-pro", SupportsTextGeneration: true},
		{ID: "gemini-1.5-flash", SupportsTextGeneration: true},
	}}
	resolver := NewModelResolver(cfg, logger.NewNop(), catalog)

	m, err := resolver.ResolveModel(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", m.ID)
	assert.Equal(t, entity.ModelTierGeneral, m.Tier)
	assert.Equal(t, []string{"gemini-retired", "embedding-001", "gemini-1.5-pro"}, catalog.getCalls)
}

func TestStaticResolver_NothingUsable(t *testing.T) {
	cfg := newTestConfig()
	cfg.Gemini.Resolution = "static"
	cfg.Gemini.Models = []string{"a", "b"}
	resolver := NewModelResolver(cfg, logger.NewNop(), &fakeCatalog{})

	m, err := resolver.ResolveModel(context.Background(), "key")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrNoTextModel))

	cfg.Gemini.Models = nil
	m, err = NewModelResolver(cfg, logger.NewNop(), &fakeCatalog{}).ResolveModel(context.Background(), "key")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrNoTextModel))
}
