package models

import "time"

// AvailabilityRequest は参加可能時間の更新リクエストです。
type AvailabilityRequest struct {
	Slots []time.Time `json:"slots" validate:"dive,required"`
}
