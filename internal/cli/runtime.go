package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/terraincognita07/wellnest/internal/api"
	"github.com/terraincognita07/wellnest/internal/cache"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/logging"
	"github.com/terraincognita07/wellnest/internal/metrics"
	"github.com/terraincognita07/wellnest/internal/sentiment"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appRuntime owns everything a command opens and must release.
type appRuntime struct {
	config   *config.Config
	logger   *zap.Logger
	location *time.Location
	database *gorm.DB
	redis    *redis.Client
	metrics  *metrics.Metrics
	notifier *services.ChangeHub
	deps     api.Dependencies
	cleanups []func()
}

func openRuntime(ctx context.Context, cfg *config.Config) (*appRuntime, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, appName)
	if err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	return openRuntimeWithLogger(ctx, cfg, logger)
}

func openRuntimeWithLogger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*appRuntime, error) {
	location, ok := config.LoadLocation(cfg.Server.Timezone)
	if !ok {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.Server.Timezone))
	}

	database, err := db.Open(db.Options{
		Driver:      cfg.Database.Driver,
		SQLitePath:  cfg.Database.Path,
		PostgresDSN: cfg.Database.URL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	rt := &appRuntime{
		config:   cfg,
		logger:   logger,
		location: location,
		database: database,
		metrics:  metrics.New(),
		notifier: services.NewChangeHub(),
	}
	rt.cleanups = append(rt.cleanups, func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	rt.cleanups = append(rt.cleanups, rt.metrics.ObserveChanges(rt.notifier))

	var statsCache services.CycleStatsCache = services.NoopStatsCache{}
	if cfg.RedisEnabled() {
		client := cache.NewRedisClient(cfg.Redis)
		if err := cache.Ping(ctx, client); err != nil {
			logger.Warn("redis unavailable, stats cache disabled",
				zap.String("addr", cfg.Redis.Addr),
				zap.Error(err),
			)
			_ = client.Close()
		} else {
			rt.redis = client
			statsCache = cache.NewStatsCache(client, cfg.Redis.StatsTTL, rt.metrics, logger)
			relay := cache.NewChangeRelay(client, logger)
			rt.cleanups = append(rt.cleanups,
				func() { _ = client.Close() },
				relay.Attach(rt.notifier),
			)
		}
	}

	rt.deps = api.NewDependencies(database, api.ServiceConfig{
		Location:   location,
		Notifier:   rt.notifier,
		StatsCache: statsCache,
		Stats:      services.CycleStatsOptions{PredictFromAverage: cfg.Stats.PredictFromAverage},
		I18n:       i18nManager,
		Logger:     logger,
	})
	rt.deps.Metrics = rt.metrics
	if cfg.SentimentEnabled() {
		rt.deps.Sentiment = sentiment.NewClient(cfg.Sentiment.URL, cfg.Sentiment.Token, rt.metrics, logger)
	}

	return rt, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *appRuntime) Close() {
	for i := len(rt.cleanups) - 1; i >= 0; i-- {
		rt.cleanups[i]()
	}
	rt.cleanups = nil
	_ = rt.logger.Sync()
}
