package models

import (
	"time"

	"submitserver/internal/window"

	"gorm.io/datatypes"
)

// Event は提出受付期間とスケジュール枠を持つイベントです。
type Event struct {
	ID                         uint                        `gorm:"primarykey" json:"id"`
	CreatedAt                  time.Time                   `json:"createdAt"`
	UpdatedAt                  time.Time                   `json:"updatedAt"`
	EventName                  string                      `gorm:"not null" json:"eventName"`
	SubmissionWindowStart      time.Time                   `gorm:"not null" json:"submissionWindowStart"`
	SubmissionWindowEnd        time.Time                   `gorm:"not null" json:"submissionWindowEnd"`
	EventStart                 time.Time                   `gorm:"not null" json:"eventStart"`
	EventDurationDays          int                         `gorm:"not null;default:3" json:"eventDays"`
	DayStartHour               int                         `gorm:"not null;default:9" json:"startTime"`
	DayEndHour                 int                         `gorm:"not null;default:24" json:"endTime"`
	Visible                    bool                        `gorm:"not null;default:false" json:"visible"`
	MaxSubmissionsPerUser      int                         `gorm:"not null;default:5" json:"maxSubmissions"`
	MaxCategoriesPerSubmission int                         `gorm:"not null;default:5" json:"maxCategories"`
	Genres                     datatypes.JSONSlice[string] `gorm:"not null" json:"genres"`
}

// SubmissionPhase は現在時刻に対する提出受付期間の状態を返します。
func (e Event) SubmissionPhase(now time.Time) window.Phase {
	return window.Classify(now, e.SubmissionWindowStart, e.SubmissionWindowEnd)
}

// HasGenre reports whether genre is one of the event's genres.
func (e Event) HasGenre(genre string) bool {
	for _, g := range e.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Apply copies the editable fields of the request onto the event.
func (e *Event) Apply(req EventRequest) {
	e.EventName = req.EventName
	e.SubmissionWindowStart = req.SubmissionWindowStart
	e.SubmissionWindowEnd = req.SubmissionWindowEnd
	e.EventStart = req.EventStart
	e.EventDurationDays = req.EventDurationDays
	e.DayStartHour = req.DayStartHour
	e.DayEndHour = req.DayEndHour
	e.Visible = req.Visible
	e.MaxSubmissionsPerUser = req.MaxSubmissionsPerUser
	e.MaxCategoriesPerSubmission = req.MaxCategoriesPerSubmission
	e.Genres = datatypes.JSONSlice[string](append([]string(nil), req.Genres...))
}
