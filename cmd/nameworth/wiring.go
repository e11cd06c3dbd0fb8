package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nameworth/nameworth/internal/application"
	"github.com/nameworth/nameworth/internal/cache"
	"github.com/nameworth/nameworth/internal/config"
	httpiface "github.com/nameworth/nameworth/internal/interfaces/http"
	"github.com/nameworth/nameworth/internal/providers/appraisal"
	"github.com/nameworth/nameworth/internal/valuation"
)

// stack is the assembled service graph shared by the CLI commands and
// the server.
type stack struct {
	cfg       *config.Config
	appraiser *application.Appraiser
	metrics   *httpiface.MetricsRegistry
}

// buildStack wires config -> cache -> provider -> orchestrator ->
// appraiser. Configuration problems fail fast here, before any work.
func buildStack(configPath string) (*stack, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var store cache.Store
	if cfg.Cache.RedisAddr != "" {
		store = cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("using redis valuation cache")
	} else {
		store = cache.NewMemory()
		log.Info().Msg("using in-process valuation cache")
	}

	var provider valuation.Provider
	if cfg.Inference.Enabled {
		client, err := appraisal.New(appraisal.Config{
			BaseURL: cfg.Inference.BaseURL,
			APIKey:  cfg.Inference.APIKey,
			Timeout: time.Duration(cfg.Inference.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		provider = client
	}

	metrics := httpiface.NewMetricsRegistry()
	orchestrator := valuation.NewOrchestrator(provider, store, cfg.OrchestratorConfig()).WithObserver(metrics)
	appraiser := application.NewAppraiser(orchestrator, application.Config{
		Concurrency: cfg.Batch.Concurrency,
		MaxBatch:    cfg.Batch.MaxDomains,
	})

	return &stack{cfg: cfg, appraiser: appraiser, metrics: metrics}, nil
}
