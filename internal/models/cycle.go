package models

import "time"

const (
	DefaultCycleLength = 28
	LutealPhaseDays    = 14
)

type Cycle struct {
	ID        uint       `gorm:"primaryKey"`
	StartDate time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_cycles_start_date"`
	EndDate   *time.Time `gorm:"type:date"`
	Notes     string     `gorm:"not null;default:''"`
	CreatedAt time.Time
}
