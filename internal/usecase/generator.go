package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"seedrec/internal/domain/entity"
	"seedrec/internal/domain/repository"
	"seedrec/internal/logging"
	"seedrec/internal/metrics"
)

// Sampling parameters. Retries run hotter than the first attempt.
const (
	firstTemperature float32 = 0.4
	retryTemperature float32 = 0.7
	topP             float32 = 0.8
	topK             float32 = 40
	maxOutputTokens  int32   = 8192
)

// Generator turns a validated request into normalized recommendations by
// calling the upstream model with retries.
type Generator struct {
	primary    repository.AIProvider
	fallback   repository.AIProvider // tried once after the primary is exhausted
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration // covers every attempt of one Generate call
	log        zerolog.Logger
}

type GeneratorOption func(*Generator)

func WithFallback(p repository.AIProvider) GeneratorOption {
	return func(g *Generator) { g.fallback = p }
}

func WithMaxRetries(n int) GeneratorOption {
	return func(g *Generator) { g.maxRetries = n }
}

func WithBaseDelay(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.baseDelay = d }
}

func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.timeout = d }
}

func NewGenerator(primary repository.AIProvider, opts ...GeneratorOption) *Generator {
	g := &Generator{
		primary:    primary,
		maxRetries: 2, // Total 3 attempts for Primary
		baseDelay:  100 * time.Millisecond,
		timeout:    25 * time.Second,
		log:        logging.Component("generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns at most count normalized items. Every failure after the
// retries are spent is reported as entity.ErrUpstream.
func (g *Generator) Generate(ctx context.Context, domain entity.Domain, seeds []entity.Seed, count int) (*entity.RecommendationResponse, error) {
	start := time.Now()

	prompt, err := BuildPrompt(domain, seeds, count)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.executeWithRetry(genCtx, prompt, domain, len(seeds), count)
	if err != nil && g.fallback != nil && genCtx.Err() == nil {
		g.log.Warn().Err(err).Msg("primary exhausted, switching to fallback")
		resp, err = g.attempt(genCtx, g.fallback, "fallback", prompt, retryTemperature, domain, len(seeds), count)
	}
	if err != nil {
		metrics.RecordGeneration(string(domain), "failure", time.Since(start))
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstream, err)
	}

	metrics.RecordGeneration(string(domain), "success", time.Since(start))
	return resp, nil
}

func (g *Generator) executeWithRetry(ctx context.Context, prompt string, domain entity.Domain, seedCount, count int) (*entity.RecommendationResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		temperature := firstTemperature
		if attempt > 0 {
			temperature = retryTemperature
		}

		resp, err := g.attempt(ctx, g.primary, "primary", prompt, temperature, domain, seedCount, count)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		g.log.Warn().Err(err).Int("attempt", attempt+1).Str("domain", string(domain)).Msg("generation attempt failed")

		if attempt == g.maxRetries {
			break
		}

		select {
		case <-time.After(g.calculateBackoff(attempt)):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w (last error: %v)", ctx.Err(), lastErr)
		}
	}
	return nil, lastErr
}

func (g *Generator) attempt(ctx context.Context, p repository.AIProvider, label, prompt string, temperature float32, domain entity.Domain, seedCount, count int) (*entity.RecommendationResponse, error) {
	ai, err := p.Generate(ctx, prompt, repository.GenerationOptions{
		Temperature:     temperature,
		TopP:            topP,
		TopK:            topK,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		metrics.RecordUpstreamAttempt(label, "call_error")
		return nil, fmt.Errorf("generate: %w", err)
	}

	resp, err := BuildResponse(ai.Content, domain, seedCount, count)
	if err != nil {
		metrics.RecordUpstreamAttempt(label, "parse_error")
		return nil, err
	}
	metrics.RecordUpstreamAttempt(label, "success")
	g.log.Debug().
		Str("provider", label).
		Str("model", ai.Model).
		Int("tokens", ai.TokenCount).
		Dur("latency", ai.Latency).
		Int("items", len(resp.Items)).
		Msg("generation attempt succeeded")
	return resp, nil
}

// BuildResponse parses raw model text and normalizes its items, truncating
// to count.
func BuildResponse(text string, domain entity.Domain, seedCount, count int) (*entity.RecommendationResponse, error) {
	obj, err := ParseModelOutput(text)
	if err != nil {
		return nil, err
	}
	rawItems, ok := obj["items"].([]any)
	if !ok {
		return nil, entity.ErrMissingItems
	}

	meta := entity.Meta{SeedCount: seedCount, Requested: count, Model: entity.DefaultModelLabel}
	if m, ok := obj["meta"].(map[string]any); ok {
		if model, ok := m["model"].(string); ok && strings.TrimSpace(model) != "" {
			meta.Model = model
		}
	}

	items := make([]entity.Recommendation, 0, len(rawItems))
	for _, raw := range rawItems {
		if rec, ok := NormalizeRecommendation(raw, domain); ok {
			items = append(items, rec)
		}
	}
	if len(items) > count {
		items = items[:count]
	}
	return &entity.RecommendationResponse{Items: items, Meta: meta}, nil
}

func (g *Generator) calculateBackoff(attempt int) time.Duration {
	backoff := float64(g.baseDelay) * float64(int(1)<<attempt)
	jitter := (rand.Float64() * 0.2) * backoff // 20% jitter
	return time.Duration(backoff + jitter)
}
