package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventAvailability は(ユーザー, イベント)ごとに1件の参加可能時間です。
type EventAvailability struct {
	ID        uint                           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time                      `json:"createdAt"`
	UpdatedAt time.Time                      `json:"updatedAt"`
	UserID    uint                           `gorm:"not null;uniqueIndex:idx_availability_user_event" json:"userId"`
	EventID   uint                           `gorm:"not null;uniqueIndex:idx_availability_user_event" json:"eventId"`
	Slots     datatypes.JSONSlice[time.Time] `gorm:"not null" json:"slots"`
}
