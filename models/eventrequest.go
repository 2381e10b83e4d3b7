package models

import "time"

// EventRequest は管理者が編集できるイベントの項目だけを持ちます。
type EventRequest struct {
	ID                         *uint     `json:"id,omitempty"`
	EventName                  string    `json:"eventName" validate:"required,max=100"`
	SubmissionWindowStart      time.Time `json:"submissionWindowStart" validate:"required"`
	SubmissionWindowEnd        time.Time `json:"submissionWindowEnd" validate:"required"`
	EventStart                 time.Time `json:"eventStart" validate:"required"`
	EventDurationDays          int       `json:"eventDays" validate:"min=1"`
	DayStartHour               int       `json:"startTime" validate:"min=0,max=24"`
	DayEndHour                 int       `json:"endTime" validate:"min=0,max=24"`
	Visible                    bool      `json:"visible"`
	MaxSubmissionsPerUser      int       `json:"maxSubmissions" validate:"min=1"`
	MaxCategoriesPerSubmission int       `json:"maxCategories" validate:"min=1"`
	Genres                     []string  `json:"genres" validate:"min=1,dive,required,max=100"`
}

// NewEventRequest は新規イベントの初期値を返します。
func NewEventRequest(now time.Time) EventRequest {
	return EventRequest{
		EventName:                  "New Event",
		SubmissionWindowStart:      now,
		SubmissionWindowEnd:        now,
		EventStart:                 now,
		EventDurationDays:          3,
		DayStartHour:               9,
		DayEndHour:                 24,
		MaxSubmissionsPerUser:      5,
		MaxCategoriesPerSubmission: 5,
		Genres:                     []string{},
	}
}

// EventRequestFrom は保存済みイベントから編集用の値を作ります。
func EventRequestFrom(e Event) EventRequest {
	id := e.ID
	return EventRequest{
		ID:                         &id,
		EventName:                  e.EventName,
		SubmissionWindowStart:      e.SubmissionWindowStart,
		SubmissionWindowEnd:        e.SubmissionWindowEnd,
		EventStart:                 e.EventStart,
		EventDurationDays:          e.EventDurationDays,
		DayStartHour:               e.DayStartHour,
		DayEndHour:                 e.DayEndHour,
		Visible:                    e.Visible,
		MaxSubmissionsPerUser:      e.MaxSubmissionsPerUser,
		MaxCategoriesPerSubmission: e.MaxCategoriesPerSubmission,
		Genres:                     append([]string(nil), e.Genres...),
	}
}
