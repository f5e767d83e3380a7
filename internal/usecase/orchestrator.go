package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"seedrec/internal/domain/entity"
	"seedrec/internal/logging"
	"seedrec/internal/metrics"
)

const upstreamFailureMessage = "Failed to generate recommendations. Please try again."

// Recommender is the part of the generator the orchestrator depends on.
type Recommender interface {
	Generate(ctx context.Context, domain entity.Domain, seeds []entity.Seed, count int) (*entity.RecommendationResponse, error)
}

type Orchestrator struct {
	generator Recommender
	log       zerolog.Logger
}

func NewOrchestrator(gen Recommender) *Orchestrator {
	return &Orchestrator{generator: gen, log: logging.Component("orchestrator")}
}

// Execute validates a decoded request body and runs it through generation
// and post-processing. Failures are *entity.Error values.
func (u *Orchestrator) Execute(ctx context.Context, body map[string]any) (*entity.RecommendationResponse, error) {
	// 1. Validate, short-circuiting on the first failing field
	domain, ok := entity.ParseDomain(body["domain"])
	if !ok {
		return nil, entity.BadRequest(`Domain must be one of "songs", "movies" or "tvshows"`)
	}
	if sv := ValidateSeeds(body["seeds"]); !sv.Valid {
		return nil, entity.BadRequest(strings.Join(sv.Errors, ", "))
	}
	cv := ValidateCount(body["count"])
	if !cv.Valid {
		return nil, entity.BadRequest(cv.Error)
	}
	seeds := seedsFromValidated(body["seeds"])

	// 2. Generate
	resp, err := u.generator.Generate(ctx, domain, seeds, cv.Value)
	if err != nil {
		u.log.Error().Err(err).Str("domain", string(domain)).Int("count", cv.Value).Msg("generation failed")
		return nil, entity.NewError(entity.CodeUpstream, upstreamFailureMessage, err)
	}

	// 3. Post-process
	items := SortByConfidence(RemoveDuplicates(resp.Items))
	if len(items) < cv.Value {
		u.log.Warn().
			Str("domain", string(domain)).
			Int("requested", cv.Value).
			Int("returned", len(items)).
			Msg("fewer recommendations than requested")
	}
	metrics.ItemsReturned.WithLabelValues(string(domain)).Observe(float64(len(items)))

	meta := resp.Meta
	meta.SeedCount = len(seeds)
	meta.Requested = cv.Value
	return &entity.RecommendationResponse{Items: items, Meta: meta}, nil
}
