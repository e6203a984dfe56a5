package db

import (
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) List() ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Order("start_date ASC, id ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListStartDates() ([]time.Time, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Select("start_date").Order("start_date ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(cycles))
	for _, cycle := range cycles {
		dates = append(dates, cycle.StartDate)
	}
	return dates, nil
}

func (repo *CycleRepository) Latest() (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	result := repo.database.Order("start_date DESC, id DESC").Limit(1).Find(&cycle)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *CycleRepository) ExistsInDayRange(dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Cycle{}).
		Where("start_date >= ? AND start_date < ?", dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

// DeleteByID reports false when no cycle has the given id.
func (repo *CycleRepository) DeleteByID(cycleID uint) (bool, error) {
	result := repo.database.Delete(&models.Cycle{}, cycleID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
