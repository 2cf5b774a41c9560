package api

import (
	"context"
	"errors"
	"time"

	"github.com/terraincognita07/wellnest/internal/i18n"
	"github.com/terraincognita07/wellnest/internal/metrics"
	"github.com/terraincognita07/wellnest/internal/sentiment"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	loginAttemptLimit   = 8
	loginAttemptWindow  = 15 * time.Minute
)

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (sentiment.Result, error)
}

// Dependencies are the collaborators the HTTP layer delegates to. Sentiment
// and Metrics may be nil.
type Dependencies struct {
	Auth          *services.AuthService
	CycleDays     *services.CycleDayService
	PregnancyDays *services.PregnancyDayService
	Settings      *services.SettingsService
	Stats         *services.StatsService
	Export        *services.ExportService
	Sentiment     SentimentAnalyzer
	I18n          *i18n.Manager
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

type Options struct {
	SecretKey    string
	CookieSecure bool
	Location     *time.Location
	// Now is overridable in tests.
	Now func() time.Time
}

type Handler struct {
	secretKey     []byte
	cookieSecure  bool
	location      *time.Location
	now           func() time.Time
	auth          *services.AuthService
	cycleDays     *services.CycleDayService
	pregnancyDays *services.PregnancyDayService
	settings      *services.SettingsService
	stats         *services.StatsService
	export        *services.ExportService
	sentiment     SentimentAnalyzer
	i18n          *i18n.Manager
	metrics       *metrics.Metrics
	logger        *zap.Logger
	loginLimiter  *attemptLimiter
}

func NewHandler(deps Dependencies, options Options) (*Handler, error) {
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Auth == nil || deps.CycleDays == nil || deps.PregnancyDays == nil ||
		deps.Settings == nil || deps.Stats == nil || deps.Export == nil {
		return nil, errors.New("handler services are incomplete")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		secretKey:     []byte(options.SecretKey),
		cookieSecure:  options.CookieSecure,
		location:      location,
		now:           now,
		auth:          deps.Auth,
		cycleDays:     deps.CycleDays,
		pregnancyDays: deps.PregnancyDays,
		settings:      deps.Settings,
		stats:         deps.Stats,
		export:        deps.Export,
		sentiment:     deps.Sentiment,
		i18n:          deps.I18n,
		metrics:       deps.Metrics,
		logger:        logger.Named("api"),
		loginLimiter:  newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
	}, nil
}
