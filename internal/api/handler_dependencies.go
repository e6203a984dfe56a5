package api

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/terraincognita07/mahwari/internal/db"
	"github.com/terraincognita07/mahwari/internal/models"
	"github.com/terraincognita07/mahwari/internal/services"
	"gorm.io/gorm"
)

type CycleService interface {
	ListCycles() ([]models.Cycle, error)
	LogPeriodStart(day time.Time, notes string, today time.Time) (models.Cycle, error)
	DeleteCycle(cycleID uint) error
	LatestCycle() (models.Cycle, bool, error)
	Analyzer() (*services.CycleAnalyzer, error)
}

type DailyLogService interface {
	Get(day time.Time) (services.DailyLogView, error)
	ListRange(from time.Time, to time.Time) ([]services.DailyLogView, error)
	Update(day time.Time, update services.DailyLogUpdate) (services.DailyLogView, error)
	AddWaterGlass(day time.Time) (services.DailyLogView, error)
}

type DashboardService interface {
	Build(today time.Time) (services.Dashboard, error)
}

type TrendService interface {
	CycleLengthTrend() (services.CycleLengthTrend, error)
	Chart() (*charts.Bar, error)
}

type PinService interface {
	IsConfigured() (bool, error)
	Setup(pin string) error
	Verify(pin string) error
	Change(currentPin string, newPin string) error
	Fingerprint() (string, error)
	RevokeSessions() error
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	cycleService := services.NewCycleService(repositories.Cycles)
	dailyLogService := services.NewDailyLogService(repositories.DailyLogs)

	handler.cycleService = cycleService
	handler.dailyLogService = dailyLogService
	handler.dashboardService = services.NewDashboardService(cycleService, dailyLogService)
	handler.trendService = services.NewTrendService(cycleService, services.DefaultTrendPoints)
	handler.pinService = services.NewPinService(repositories.Settings)
	return handler
}
