package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
	"github.com/ternarybob/ledgerline/internal/handlers"
	"github.com/ternarybob/ledgerline/internal/interfaces"
	"github.com/ternarybob/ledgerline/internal/services/llm"
	"github.com/ternarybob/ledgerline/internal/services/metrics"
	"github.com/ternarybob/ledgerline/internal/services/registry"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Domain services
	RegistryService  interfaces.CompanyRegistry
	ContentGenerator interfaces.ContentGenerator
	MetricsExtractor interfaces.MetricsExtractor

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	CompanyHandler *handlers.CompanyHandler
	ExtractHandler *handlers.ExtractHandler
}

// New initializes the application with all dependencies.
// Gemini must be configured; the registry needs nothing beyond defaults.
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if err := cfg.ValidateGemini(); err != nil {
		return nil, err
	}

	generator, err := NewContentGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize content generator: %w", err)
	}

	app := NewWithServices(cfg, logger, NewRegistryService(cfg, logger), metrics.NewExtractor(generator, logger))
	app.ContentGenerator = generator

	logger.Info().
		Str("registry_url", cfg.Registry.BaseURL).
		Str("model", cfg.Gemini.Model).
		Msg("Application initialized")

	return app, nil
}

// NewWithServices wires handlers around already constructed domain services
func NewWithServices(cfg *common.Config, logger arbor.ILogger, registryService interfaces.CompanyRegistry, extractor interfaces.MetricsExtractor) *App {
	app := &App{
		Config:           cfg,
		Logger:           logger,
		RegistryService:  registryService,
		MetricsExtractor: extractor,
	}
	app.initHandlers()
	return app
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.CompanyHandler = handlers.NewCompanyHandler(a.RegistryService, a.Logger)
	a.ExtractHandler = handlers.NewExtractHandler(a.MetricsExtractor, a.Logger)
}

// NewRegistryService builds the YTJ lookup service from the registry config section
func NewRegistryService(cfg *common.Config, logger arbor.ILogger) *registry.Service {
	client := registry.NewClient(
		registry.WithBaseURL(cfg.Registry.BaseURL),
		registry.WithAPIToken(cfg.Registry.APIToken),
		registry.WithTimeout(cfg.Registry.RequestTimeout()),
		registry.WithRateLimit(cfg.Registry.RateLimit),
		registry.WithLogger(logger),
	)
	return registry.NewService(client, logger)
}

// NewContentGenerator builds the Gemini generator from the gemini config section
func NewContentGenerator(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (interfaces.ContentGenerator, error) {
	service, err := llm.NewGeminiService(ctx, &cfg.Gemini, logger)
	if err != nil {
		return nil, err
	}
	return service, nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.ContentGenerator != nil {
		if err := a.ContentGenerator.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close content generator")
			return err
		}
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
