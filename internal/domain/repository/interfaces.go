package repository

import (
	"context"
	"seedrec/internal/domain/entity"
)

// GenerationOptions are the sampling parameters for a single completion call.
type GenerationOptions struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

type AIProvider interface {
	Generate(ctx context.Context, prompt string, opts GenerationOptions) (*entity.AIResponse, error)
}

// RateLimiter admits or rejects a request for a client key. Check must be
// atomic per key: two concurrent calls never both take the last slot.
type RateLimiter interface {
	Check(ctx context.Context, key string) (entity.RateLimitStatus, error)
}
