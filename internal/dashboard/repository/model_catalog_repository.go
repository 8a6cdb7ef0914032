package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang-market-briefing/internal/dashboard/config"
	"golang-market-briefing/internal/entity"
	"golang-market-briefing/pkg/common"
	"golang-market-briefing/pkg/logger"

	"google.golang.org/genai"
)

// ErrModelNotFound is returned by GetModel when the id is unknown to the API.
var ErrModelNotFound = errors.New("model not found")

type geminiModelCatalog struct {
	cfg        *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

// NewGeminiModelCatalog creates a ModelCatalogRepository backed by the genai SDK.
// A client is built per call because the credential is supplied per call.
func NewGeminiModelCatalog(cfg *config.Config, log *logger.Logger) ModelCatalogRepository {
	return &geminiModelCatalog{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: cfg.Gemini.Timeout,
		},
	}
}

func (r *geminiModelCatalog) newClient(ctx context.Context, credential string) (*genai.Client, error) {
	if credential == "" {
		return nil, errors.New("empty credential")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: r.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimRight(r.cfg.Gemini.BaseURL, "/") + "/",
			APIVersion: r.cfg.Gemini.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// ListModels walks every page of the model listing, in API order.
func (r *geminiModelCatalog) ListModels(ctx context.Context, credential string) ([]entity.ModelDescriptor, error) {
	client, err := r.newClient(ctx, credential)
	if err != nil {
		return nil, err
	}

	page, err := client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var models []entity.ModelDescriptor
	for {
		for _, m := range page.Items {
			if m == nil {
				continue
			}
			models = append(models, toModelDescriptor(m))
		}
		page, err = page.Next(ctx)
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
	}

	r.logger.DebugContext(ctx, "Listed models", logger.IntField("count", len(models)))
	return models, nil
}

func (r *geminiModelCatalog) GetModel(ctx context.Context, credential, modelID string) (*entity.ModelDescriptor, error) {
	client, err := r.newClient(ctx, credential)
	if err != nil {
		return nil, err
	}

	m, err := client.Models.Get(ctx, modelID, nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
		}
		return nil, fmt.Errorf("failed to get model %s: %w", modelID, err)
	}
	descriptor := toModelDescriptor(m)
	return &descriptor, nil
}

func (r *geminiModelCatalog) CountTokens(ctx context.Context, credential, modelID, prompt string) (int, error) {
	client, err := r.newClient(ctx, credential)
	if err != nil {
		return 0, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := client.Models.CountTokens(ctx, modelID, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return int(resp.TotalTokens), nil
}

func toModelDescriptor(m *genai.Model) entity.ModelDescriptor {
	return entity.ModelDescriptor{
		ID:                     strings.TrimPrefix(m.Name, "models/"),
		DisplayName:            m.DisplayName,
		SupportsTextGeneration: slices.Contains(m.SupportedActions, common.GeminiGenerateContentMethod),
	}
}
