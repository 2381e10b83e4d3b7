package memstore

import (
	"context"
	"testing"
	"time"

	"submitserver/models"

	"github.com/bmizerany/assert"
	"gorm.io/gorm"
)

func TestSaveSubmissionReplacesCategories(t *testing.T) {
	s := New()
	ctx := context.Background()

	sub := models.GameSubmission{UserID: 1, EventID: 1, GameTitle: "Celeste"}
	sub.Categories = []models.Category{{CategoryName: "Any%"}, {CategoryName: "100%"}}
	assert.Equal(t, nil, s.SaveSubmission(ctx, &sub))
	assert.NotEqual(t, uint(0), sub.ID)

	sub.Categories = []models.Category{{CategoryName: "True Ending"}}
	assert.Equal(t, nil, s.SaveSubmission(ctx, &sub))

	got, err := s.GetSubmission(ctx, sub.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(got.Categories))
	assert.Equal(t, "True Ending", got.Categories[0].CategoryName)
	assert.Equal(t, sub.ID, got.Categories[0].SubmissionID)

	// 返した値を変更してもストアには影響しない
	got.Categories[0].CategoryName = "mutated"
	again, _ := s.GetSubmission(ctx, sub.ID)
	assert.Equal(t, "True Ending", again.Categories[0].CategoryName)
}

func TestMissingRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetEvent(ctx, 42)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	_, err = s.GetSubmission(ctx, 42)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	_, err = s.GetUser(ctx, 42)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
	assert.Equal(t, gorm.ErrRecordNotFound, s.DeleteEvent(ctx, 42))
}

func TestListEventsVisibility(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.Equal(t, nil, s.SaveEvent(ctx, &models.Event{EventName: "public", Visible: true}))
	assert.Equal(t, nil, s.SaveEvent(ctx, &models.Event{EventName: "hidden"}))

	visible, err := s.ListEvents(ctx, false)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(visible))
	assert.Equal(t, "public", visible[0].EventName)

	all, err := s.ListEvents(ctx, true)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(all))
}

func TestAvailabilityIsOnePerUserAndEvent(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.FindOrCreateAvailability(ctx, 1, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(created.Slots))

	found, err := s.FindOrCreateAvailability(ctx, 1, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, created.ID, found.ID)

	slot := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	record := models.EventAvailability{UserID: 1, EventID: 2, Slots: []time.Time{slot}}
	assert.Equal(t, nil, s.UpsertAvailability(ctx, &record))
	assert.Equal(t, created.ID, record.ID)

	records, err := s.ListAvailability(ctx, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(records))
	assert.Equal(t, 1, len(records[0].Slots))
}

func TestUpsertProviderUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.UpsertProviderUser(ctx, "99", "old name")
	assert.Equal(t, nil, err)
	assert.T(t, first.ShowSubmissions)

	second, err := s.UpsertProviderUser(ctx, "99", "new name")
	assert.Equal(t, nil, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new name", second.Name)
}

func TestSessionsExpire(t *testing.T) {
	s := NewSessions(time.Hour)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }
	ctx := context.Background()

	session, err := s.Create(ctx, 7)
	assert.Equal(t, nil, err)
	got, err := s.Get(ctx, session.ID)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint(7), got.UserID)

	current = current.Add(2 * time.Hour)
	_, err = s.Get(ctx, session.ID)
	assert.NotEqual(t, nil, err)
}

func TestSessionsDelete(t *testing.T) {
	s := NewSessions(time.Hour)
	ctx := context.Background()

	session, err := s.Create(ctx, 7)
	assert.Equal(t, nil, err)
	assert.Equal(t, nil, s.Delete(ctx, session.ID))
	_, err = s.Get(ctx, session.ID)
	assert.NotEqual(t, nil, err)
}
