package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
	"go.uber.org/zap"
)

const DefaultReminderDaysBefore = 2

type ReminderCycleSource interface {
	LatestCycle() (models.Cycle, bool, error)
	Analyzer() (*CycleAnalyzer, error)
}

type ReminderSender interface {
	SendReminder(ctx context.Context, text string) error
}

type ReminderService struct {
	cycles     ReminderCycleSource
	sender     ReminderSender
	daysBefore int
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time

	mu           sync.Mutex
	lastNotified time.Time
}

func NewReminderService(cycles ReminderCycleSource, sender ReminderSender, daysBefore int, location *time.Location, logger *zap.Logger) *ReminderService {
	if daysBefore < 0 {
		daysBefore = DefaultReminderDaysBefore
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		cycles:     cycles,
		sender:     sender,
		daysBefore: daysBefore,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

// Check sends at most one reminder per calendar day, and only when the
// predicted next period is exactly daysBefore days away. It reports whether
// a message went out.
func (service *ReminderService) Check(ctx context.Context) (bool, error) {
	today := Today(service.now(), service.location)

	service.mu.Lock()
	defer service.mu.Unlock()

	if service.lastNotified.Equal(today) {
		return false, nil
	}

	latest, found, err := service.cycles.LatestCycle()
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	analyzer, err := service.cycles.Analyzer()
	if err != nil {
		return false, err
	}

	nextPeriod := analyzer.PredictNextPeriod(latest.StartDate)
	daysUntil := DaysBetween(today, nextPeriod)
	if daysUntil != service.daysBefore {
		service.logger.Debug("reminder skipped",
			zap.String("next_period", FormatCalendarDate(nextPeriod)),
			zap.Int("days_until", daysUntil),
		)
		return false, nil
	}

	if err := service.sender.SendReminder(ctx, ReminderText(nextPeriod, daysUntil)); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}
	service.lastNotified = today
	service.logger.Info("reminder sent", zap.String("next_period", FormatCalendarDate(nextPeriod)))
	return true, nil
}

func ReminderText(nextPeriod time.Time, daysUntil int) string {
	switch daysUntil {
	case 0:
		return fmt.Sprintf("Your period is predicted to start today (%s).", FormatCalendarDate(nextPeriod))
	case 1:
		return fmt.Sprintf("Your period is predicted to start tomorrow (%s).", FormatCalendarDate(nextPeriod))
	default:
		return fmt.Sprintf("Your period is predicted to start in %d days (%s).", daysUntil, FormatCalendarDate(nextPeriod))
	}
}
