package migrations

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type eventAvailability202403 struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint                           `gorm:"not null;uniqueIndex:idx_availability_user_event"`
	EventID   uint                           `gorm:"not null;uniqueIndex:idx_availability_user_event"`
	Slots     datatypes.JSONSlice[time.Time] `gorm:"not null"`
}

func (eventAvailability202403) TableName() string { return "event_availabilities" }

func createAvailability(tx *gorm.DB) error {
	return tx.AutoMigrate(&eventAvailability202403{})
}
