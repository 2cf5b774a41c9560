package api

import (
	"time"

	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceConfig describes how NewDependencies wires the service layer.
type ServiceConfig struct {
	Location   *time.Location
	Notifier   services.ChangeNotifier
	StatsCache services.CycleStatsCache
	Stats      services.CycleStatsOptions
	I18n       *i18n.Manager
	Logger     *zap.Logger
}

// NewDependencies builds every service on top of the gorm repositories and
// binds stats cache invalidation to the notifier.
func NewDependencies(database *gorm.DB, config ServiceConfig) Dependencies {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notifier := config.Notifier
	if notifier == nil {
		notifier = services.NewChangeHub()
	}

	repositories := db.NewRepositories(database)
	settingsService := services.NewSettingsService(repositories.Settings, notifier, logger)
	cycleDays := services.NewCycleDayService(repositories.CycleDays, notifier, config.Location, logger)
	pregnancyDays := services.NewPregnancyDayService(repositories.PregnancyDays, settingsService, notifier, config.Location, logger)
	stats := services.NewStatsService(cycleDays, pregnancyDays, config.StatsCache, config.Stats, config.Location, logger)
	stats.BindInvalidation(notifier)

	return Dependencies{
		Auth:          services.NewAuthService(repositories.Users, notifier, logger),
		CycleDays:     cycleDays,
		PregnancyDays: pregnancyDays,
		Settings:      settingsService,
		Stats:         stats,
		Export:        services.NewExportService(cycleDays),
		I18n:          config.I18n,
		Logger:        logger,
	}
}
