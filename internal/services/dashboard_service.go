package services

import (
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
)

type DashboardCycleSource interface {
	LatestCycle() (models.Cycle, bool, error)
	Analyzer() (*CycleAnalyzer, error)
}

type DashboardDailyLogSource interface {
	Get(day time.Time) (DailyLogView, error)
}

type Dashboard struct {
	HasData             bool         `json:"has_data"`
	Today               string       `json:"today"`
	LastPeriodDate      string       `json:"last_period_date,omitempty"`
	CycleDay            int          `json:"cycle_day,omitempty"`
	Phase               Phase        `json:"phase"`
	Fertility           Fertility    `json:"fertility"`
	NextPeriodDate      string       `json:"next_period_date,omitempty"`
	DaysUntilNextPeriod int          `json:"days_until_next_period"`
	AverageCycleLength  int          `json:"avg_length"`
	IsPCOS              bool         `json:"is_pcos"`
	Exercise            string       `json:"exercise"`
	TodayLog            DailyLogView `json:"today_log"`
}

type DashboardService struct {
	cycles DashboardCycleSource
	logs   DashboardDailyLogSource
}

func NewDashboardService(cycles DashboardCycleSource, logs DashboardDailyLogSource) *DashboardService {
	return &DashboardService{
		cycles: cycles,
		logs:   logs,
	}
}

func (service *DashboardService) Build(today time.Time) (Dashboard, error) {
	today = CalendarDate(today)

	todayLog, err := service.logs.Get(today)
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		Today:              FormatCalendarDate(today),
		Phase:              PhaseUnknown,
		Fertility:          FertilityUnknown,
		AverageCycleLength: models.DefaultCycleLength,
		Exercise:           exerciseWithoutHistory,
		TodayLog:           todayLog,
	}

	latest, found, err := service.cycles.LatestCycle()
	if err != nil {
		return Dashboard{}, err
	}
	if !found {
		return dashboard, nil
	}

	analyzer, err := service.cycles.Analyzer()
	if err != nil {
		return Dashboard{}, err
	}

	lastPeriod := CalendarDate(latest.StartDate)
	nextPeriod := analyzer.PredictNextPeriod(lastPeriod)
	phase, fertility := analyzer.Phase(today, lastPeriod)

	dashboard.HasData = true
	dashboard.LastPeriodDate = FormatCalendarDate(lastPeriod)
	dashboard.CycleDay = CycleDay(today, lastPeriod)
	dashboard.Phase = phase
	dashboard.Fertility = fertility
	dashboard.NextPeriodDate = FormatCalendarDate(nextPeriod)
	dashboard.DaysUntilNextPeriod = DaysBetween(today, nextPeriod)
	dashboard.AverageCycleLength = analyzer.AverageCycleLength()
	dashboard.IsPCOS = analyzer.IsPCOS()
	dashboard.Exercise = ExerciseGuide(phase)
	return dashboard, nil
}
