package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"seedrec/internal/config"
	"seedrec/internal/domain/entity"
	"seedrec/internal/domain/repository"
)

// contentGenerator is the slice of *genai.Models the adapter uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	models contentGenerator
	model  string
	cb     *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

// NewGenAIClient builds the shared SDK client for the configured backend.
func NewGenAIClient(ctx context.Context, cfg config.GeminiConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Backend == config.BackendVertex {
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return client, nil
}

func NewGeminiClientFromClient(c *genai.Client, model string) *GeminiClient {
	return newGeminiClient(c.Models, model)
}

func newGeminiClient(models contentGenerator, model string) *GeminiClient {
	return &GeminiClient{
		models: models,
		model:  model,
		cb:     newBreaker[*genai.GenerateContentResponse]("gemini-" + model),
	}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts repository.GenerationOptions) (*entity.AIResponse, error) {
	start := time.Now()
	result, err := execute(g.cb, func() (*genai.GenerateContentResponse, error) {
		return g.models.GenerateContent(ctx, g.model, genai.Text(prompt), generateConfig(opts))
	})
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", g.model, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, entity.ErrEmptyResponse
	}

	resp := &entity.AIResponse{
		Content: text,
		Model:   g.model,
		Latency: time.Since(start),
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if result.UsageMetadata != nil {
		resp.TokenCount = int(result.UsageMetadata.TotalTokenCount)
	}
	return resp, nil
}

func generateConfig(opts repository.GenerationOptions) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		TopP:            genai.Ptr(opts.TopP),
		TopK:            genai.Ptr(opts.TopK),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
}
