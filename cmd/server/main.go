package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"seedrec/internal/adapter/api"
	"seedrec/internal/adapter/client"
	"seedrec/internal/adapter/store"
	"seedrec/internal/config"
	"seedrec/internal/domain/entity"
	"seedrec/internal/logging"
	"seedrec/internal/usecase"
)

func main() {
	dotEnvErr := config.LoadDotEnv(".env")

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, entity.ErrMissingCredential) {
			logging.Fatal().Err(err).Msg("upstream credential missing, refusing to start")
		}
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if dotEnvErr != nil {
		logging.Warn().Err(dotEnvErr).Msg(".env file not loaded, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genaiClient, err := client.NewGenAIClient(ctx, cfg.Gemini)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to init genai client")
	}

	primaryModel := client.NewGeminiClientFromClient(genaiClient, cfg.Gemini.Model)
	opts := []usecase.GeneratorOption{
		usecase.WithMaxRetries(cfg.Gemini.MaxRetries),
		usecase.WithBaseDelay(cfg.Gemini.RetryBaseDelay),
		usecase.WithTimeout(cfg.Gemini.Timeout),
	}
	if cfg.Gemini.FallbackModel != "" {
		opts = append(opts, usecase.WithFallback(client.NewGeminiClientFromClient(genaiClient, cfg.Gemini.FallbackModel)))
	}
	generator := usecase.NewGenerator(primaryModel, opts...)

	limiter := store.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
	go limiter.RunSweeper(ctx, cfg.RateLimit.SweepInterval)

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(generator)

	if cfg.Server.WarmupEnabled {
		go warmUp(ctx, generator)
	}

	// Initialize API Layer (Delivery Layer)
	app := fiber.New(fiber.Config{
		AppName:               "seedrec",
		ErrorHandler:          api.ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	handler := api.NewRecommendHandler(orchestrator, limiter)
	api.SetupRouter(app, handler, api.RouterOptions{
		CORSOrigins:    cfg.Server.CORSOrigins,
		MetricsEnabled: cfg.Server.MetricsEnabled,
		Version:        cfg.Server.Version,
		Env:            cfg.Server.Env,
	})

	go func() {
		<-ctx.Done()
		logging.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logging.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logging.Info().
		Str("addr", cfg.Addr()).
		Str("model", cfg.Gemini.Model).
		Str("backend", cfg.Gemini.Backend).
		Int("rate_limit", cfg.RateLimit.Max).
		Dur("rate_window", cfg.RateLimit.Window).
		Msg("seedrec running")
	if err := app.Listen(cfg.Addr()); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

// warmUp sends one small request so the first user call does not pay for a
// cold model instance.
func warmUp(ctx context.Context, gen *usecase.Generator) {
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	seeds := entity.DomainSongs.SampleSeeds()[:1]
	if _, err := gen.Generate(warmCtx, entity.DomainSongs, seeds, 1); err != nil {
		logging.Warn().Err(err).Msg("warm-up generation failed")
		return
	}
	logging.Info().Msg("warm-up complete")
}
