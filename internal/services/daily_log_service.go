package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
)

const (
	MaxDailySymptomsLength = 2000
	MaxExerciseTypeLength  = 100
	MaxWaterIntakeGlasses  = 50
)

var (
	ErrDailyLogLoadFailed      = errors.New("load daily log failed")
	ErrDailyLogSaveFailed      = errors.New("save daily log failed")
	ErrDailyLogWaterOutOfRange = errors.New("water intake out of range")
)

type DailyLogRepository interface {
	FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error)
	ListRange(fromStart time.Time, toEnd time.Time) ([]models.DailyLog, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
}

// DailyLogUpdate changes only the fields that are set.
type DailyLogUpdate struct {
	WaterIntake  *int
	ExerciseType *string
	Symptoms     *string
}

type DailyLogView struct {
	Date         string `json:"date"`
	Logged       bool   `json:"logged"`
	WaterIntake  int    `json:"water_intake"`
	WaterGoal    int    `json:"water_goal"`
	ExerciseType string `json:"exercise_type"`
	Symptoms     string `json:"symptoms"`
}

type DailyLogService struct {
	logs DailyLogRepository
}

func NewDailyLogService(logs DailyLogRepository) *DailyLogService {
	return &DailyLogService{logs: logs}
}

func (service *DailyLogService) Get(day time.Time) (DailyLogView, error) {
	entry, found, err := service.load(day)
	if err != nil {
		return DailyLogView{}, err
	}
	return buildDailyLogView(entry, found), nil
}

func (service *DailyLogService) ListRange(from time.Time, to time.Time) ([]DailyLogView, error) {
	fromStart, _ := DayRange(from)
	_, toEnd := DayRange(to)
	entries, err := service.logs.ListRange(fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}

	views := make([]DailyLogView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, buildDailyLogView(entry, true))
	}
	return views, nil
}

func (service *DailyLogService) Update(day time.Time, update DailyLogUpdate) (DailyLogView, error) {
	update, err := NormalizeDailyLogUpdate(update)
	if err != nil {
		return DailyLogView{}, err
	}

	entry, found, err := service.load(day)
	if err != nil {
		return DailyLogView{}, err
	}

	if update.WaterIntake != nil {
		entry.WaterIntake = *update.WaterIntake
	}
	if update.ExerciseType != nil {
		entry.ExerciseType = *update.ExerciseType
	}
	if update.Symptoms != nil {
		entry.Symptoms = *update.Symptoms
	}

	if err := service.persist(&entry, found); err != nil {
		return DailyLogView{}, err
	}
	return buildDailyLogView(entry, true), nil
}

func (service *DailyLogService) AddWaterGlass(day time.Time) (DailyLogView, error) {
	entry, found, err := service.load(day)
	if err != nil {
		return DailyLogView{}, err
	}
	if entry.WaterIntake >= MaxWaterIntakeGlasses {
		return DailyLogView{}, ErrDailyLogWaterOutOfRange
	}

	entry.WaterIntake++
	if err := service.persist(&entry, found); err != nil {
		return DailyLogView{}, err
	}
	return buildDailyLogView(entry, true), nil
}

func (service *DailyLogService) load(day time.Time) (models.DailyLog, bool, error) {
	dayStart, dayEnd := DayRange(day)
	entry, found, err := service.logs.FindByDayRange(dayStart, dayEnd)
	if err != nil {
		return models.DailyLog{}, false, ErrDailyLogLoadFailed
	}
	if !found {
		return models.DailyLog{Date: dayStart}, false, nil
	}
	return entry, true, nil
}

func (service *DailyLogService) persist(entry *models.DailyLog, existing bool) error {
	var err error
	if existing {
		err = service.logs.Save(entry)
	} else {
		err = service.logs.Create(entry)
	}
	if err != nil {
		return ErrDailyLogSaveFailed
	}
	return nil
}

func NormalizeDailyLogUpdate(update DailyLogUpdate) (DailyLogUpdate, error) {
	if update.WaterIntake != nil {
		if *update.WaterIntake < 0 || *update.WaterIntake > MaxWaterIntakeGlasses {
			return update, ErrDailyLogWaterOutOfRange
		}
	}
	if update.ExerciseType != nil {
		exercise := truncateRunes(strings.TrimSpace(*update.ExerciseType), MaxExerciseTypeLength)
		update.ExerciseType = &exercise
	}
	if update.Symptoms != nil {
		symptoms := truncateRunes(strings.TrimSpace(*update.Symptoms), MaxDailySymptomsLength)
		update.Symptoms = &symptoms
	}
	return update, nil
}

func WaterGoalReached(glasses int) bool {
	return glasses >= models.DefaultWaterGoal
}

func buildDailyLogView(entry models.DailyLog, logged bool) DailyLogView {
	return DailyLogView{
		Date:         FormatCalendarDate(entry.Date),
		Logged:       logged,
		WaterIntake:  entry.WaterIntake,
		WaterGoal:    models.DefaultWaterGoal,
		ExerciseType: entry.ExerciseType,
		Symptoms:     entry.Symptoms,
	}
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
