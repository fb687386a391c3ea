// internal/app/app.go

package app

import (
	"context"
	"time"

	"SpudsBot-Go/internal/config"
	"SpudsBot-Go/internal/forecast"
	"SpudsBot-Go/internal/logsink"
	"SpudsBot-Go/internal/noaa"
	"SpudsBot-Go/internal/search"
	"SpudsBot-Go/internal/store"
	"SpudsBot-Go/internal/usage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// App holds the application's configuration and dependencies. It is
// constructed once at process start; handlers read it, never mutate it.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        *store.Store
	TideClient   *noaa.Client
	SearchClient *search.Client
	Composer     *forecast.Composer
	UsageCache   *usage.Cache
	RateLimiter  *rate.Limiter
	Validate     *validator.Validate

	// InteractionLog is nil when BUCKET_NAME is not configured.
	InteractionLog *logsink.S3Sink
}

// New wires the application from configuration. A failed MongoDB
// connection degrades persistence rather than aborting startup; a failed
// S3 session only disables the interaction log.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) *App {
	tideClient := noaa.NewClient(cfg.NOAAPredictionsEndpoint, cfg.NOAAMetadataEndpoint)

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Store:        store.New(ctx, cfg.MongoURI, logger),
		TideClient:   tideClient,
		SearchClient: search.NewClient(cfg.PerplexityAPIKey, cfg.PerplexityEndpoint),
		Composer:     forecast.NewComposer(tideClient, logger),
		UsageCache:   usage.NewCache(10, 10*time.Minute),
		RateLimiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Validate:     validator.New(),
	}

	if cfg.InteractionLogEnabled() {
		sink, err := logsink.New(cfg.S3Region, cfg.S3Endpoint, cfg.S3BucketName, logger)
		if err != nil {
			logger.Warn("Interaction log disabled", zap.Error(err))
		} else {
			a.InteractionLog = sink
		}
	}

	return a
}

// Close releases the application's external connections.
func (a *App) Close(ctx context.Context) {
	a.Store.Close(ctx)
}
