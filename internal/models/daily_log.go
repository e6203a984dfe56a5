package models

import "time"

const DefaultWaterGoal = 8

type DailyLog struct {
	ID           uint      `gorm:"primaryKey"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uidx_daily_logs_date"`
	WaterIntake  int       `gorm:"not null;default:0"`
	ExerciseType string    `gorm:"not null;default:''"`
	Symptoms     string    `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
