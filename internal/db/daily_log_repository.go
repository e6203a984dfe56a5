package db

import (
	"time"

	"github.com/terraincognita07/mahwari/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) ListRange(fromStart time.Time, toEnd time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("date >= ? AND date < ?", fromStart, toEnd).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}
