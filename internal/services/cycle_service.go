package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
)

const MaxCycleNotesLength = 2000

var (
	ErrCycleAlreadyLogged = errors.New("period start already logged for this date")
	ErrCycleDateInFuture  = errors.New("period start cannot be in the future")
	ErrCycleNotFound      = errors.New("cycle not found")
	ErrCycleNotesTooLong  = errors.New("cycle notes too long")
)

type CycleRepository interface {
	List() ([]models.Cycle, error)
	ListStartDates() ([]time.Time, error)
	Latest() (models.Cycle, bool, error)
	ExistsInDayRange(dayStart time.Time, dayEnd time.Time) (bool, error)
	Create(cycle *models.Cycle) error
	DeleteByID(cycleID uint) (bool, error)
}

type CycleService struct {
	cycles CycleRepository
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{cycles: cycles}
}

func (service *CycleService) ListCycles() ([]models.Cycle, error) {
	cycles, err := service.cycles.List()
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

// LogPeriodStart records a new cycle beginning on day. today is the caller's
// current calendar date and bounds how far forward day may go.
func (service *CycleService) LogPeriodStart(day time.Time, notes string, today time.Time) (models.Cycle, error) {
	dayStart, dayEnd := DayRange(day)
	if dayStart.After(CalendarDate(today)) {
		return models.Cycle{}, ErrCycleDateInFuture
	}

	notes = strings.TrimSpace(notes)
	if len([]rune(notes)) > MaxCycleNotesLength {
		return models.Cycle{}, ErrCycleNotesTooLong
	}

	exists, err := service.cycles.ExistsInDayRange(dayStart, dayEnd)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("check existing cycle: %w", err)
	}
	if exists {
		return models.Cycle{}, ErrCycleAlreadyLogged
	}

	cycle := models.Cycle{
		StartDate: dayStart,
		Notes:     notes,
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("create cycle: %w", err)
	}
	return cycle, nil
}

func (service *CycleService) DeleteCycle(cycleID uint) error {
	deleted, err := service.cycles.DeleteByID(cycleID)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if !deleted {
		return ErrCycleNotFound
	}
	return nil
}

// LatestCycle reports false when nothing has been logged yet.
func (service *CycleService) LatestCycle() (models.Cycle, bool, error) {
	cycle, found, err := service.cycles.Latest()
	if err != nil {
		return models.Cycle{}, false, fmt.Errorf("load latest cycle: %w", err)
	}
	return cycle, found, nil
}

// Analyzer builds a fresh analyzer from every persisted start date.
func (service *CycleService) Analyzer() (*CycleAnalyzer, error) {
	dates, err := service.cycles.ListStartDates()
	if err != nil {
		return nil, fmt.Errorf("load cycle start dates: %w", err)
	}
	return NewCycleAnalyzer(dates), nil
}
