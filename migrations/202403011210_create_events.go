package migrations

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type event202403 struct {
	ID                         uint `gorm:"primarykey"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
	EventName                  string                      `gorm:"not null"`
	SubmissionWindowStart      time.Time                   `gorm:"not null"`
	SubmissionWindowEnd        time.Time                   `gorm:"not null"`
	EventStart                 time.Time                   `gorm:"not null"`
	EventDurationDays          int                         `gorm:"not null;default:3"`
	DayStartHour               int                         `gorm:"not null;default:9"`
	DayEndHour                 int                         `gorm:"not null;default:24"`
	Visible                    bool                        `gorm:"not null;default:false"`
	MaxSubmissionsPerUser      int                         `gorm:"not null;default:5"`
	MaxCategoriesPerSubmission int                         `gorm:"not null;default:5"`
	Genres                     datatypes.JSONSlice[string] `gorm:"not null"`
}

func (event202403) TableName() string { return "events" }

func createEvents(tx *gorm.DB) error {
	return tx.AutoMigrate(&event202403{})
}
