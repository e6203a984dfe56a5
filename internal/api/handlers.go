package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/mahwari/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionTTL = 12 * time.Hour

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Logger       *zap.Logger
}

type Handler struct {
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	logger        *zap.Logger
	now           func() time.Time
	sealer        *cookieSealer
	unlockLimiter *failureLimiter

	cycleService     CycleService
	dailyLogService  DailyLogService
	dashboardService DashboardService
	trendService     TrendService
	pinService       PinService
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	sealer, err := newCookieSealer([]byte(options.SecretKey))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		secretKey:     []byte(options.SecretKey),
		location:      options.Location,
		cookieSecure:  options.CookieSecure,
		logger:        options.Logger.Named("api"),
		now:           time.Now,
		sealer:        sealer,
		unlockLimiter: newFailureLimiter(unlockAttemptLimit, unlockAttemptWindow),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) today() time.Time {
	return services.Today(handler.now(), handler.location)
}
