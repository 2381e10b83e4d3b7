package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"submitserver/internal/availability"
	"submitserver/internal/validation"
	"submitserver/internal/window"
	"submitserver/middlewares"
	"submitserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventView はイベントに現在の受付状態を加えたものです。
type EventView struct {
	models.Event
	Phase  window.Phase `json:"phase"`
	Status string       `json:"status"`
}

func newEventView(e models.Event, now time.Time) EventView {
	return EventView{
		Event:  e,
		Phase:  e.SubmissionPhase(now),
		Status: window.Describe(now, e.SubmissionWindowStart, e.SubmissionWindowEnd),
	}
}

// ListEvents はイベント一覧を返します。非公開イベントは管理者が includeHidden を指定した場合だけ含めます。
func ListEvents(c *gin.Context, env *Env) {
	includeHidden := false
	if user, ok := middlewares.CurrentUser(c); ok && user.IsAdmin {
		includeHidden = truthy(c.Query("includeHidden"))
	}

	events, err := env.Store.ListEvents(c.Request.Context(), includeHidden)
	if err != nil {
		internalError(c, env.Logger, "Failed to list events", err)
		return
	}

	now := env.now()
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e, now))
	}
	c.JSON(http.StatusOK, views)
}

func truthy(v string) bool {
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}

// UpsertEvent はイベントを作成または更新します。id があれば更新です。
func UpsertEvent(c *gin.Context, env *Env) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		env.Logger.Info("Event request bind error", zap.Error(err))
		badRequest(c, msgInvalidBody)
		return
	}

	ctx := c.Request.Context()
	event := models.Event{}
	if req.ID != nil && *req.ID != 0 {
		existing, err := env.Store.GetEvent(ctx, *req.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventGone)
			return
		}
		if err != nil {
			internalError(c, env.Logger, "Failed to fetch event", err, zap.Uint("eventID", *req.ID))
			return
		}
		event = existing
	}

	if msg := validation.First(req); msg != "" {
		badRequest(c, msg)
		return
	}

	event.Apply(req)
	if err := env.Store.SaveEvent(ctx, &event); err != nil {
		internalError(c, env.Logger, "Failed to save event", err, zap.Uint("eventID", event.ID))
		return
	}

	env.Logger.Info("Event saved", zap.Uint("eventID", event.ID))
	c.JSON(http.StatusOK, newEventView(event, env.now()))
}

// DeleteEvent はイベントと関連する提出・参加可能時間を削除します。
func DeleteEvent(c *gin.Context, env *Env) {
	eventID, ok := idParam(c, "id")
	if !ok {
		badRequest(c, msgEventIDRequired)
		return
	}

	ctx := c.Request.Context()
	if _, err := env.Store.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventGone)
			return
		}
		internalError(c, env.Logger, "Failed to fetch event", err, zap.Uint("eventID", eventID))
		return
	}

	if err := env.Store.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventGone)
			return
		}
		internalError(c, env.Logger, "Failed to delete event", err, zap.Uint("eventID", eventID))
		return
	}

	env.Logger.Info("Event deleted", zap.Uint("eventID", eventID))
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted."})
}

// visibleEvent はイベントを読み込みます。非公開イベントは管理者以外には存在しないものとして扱います。
func visibleEvent(c *gin.Context, env *Env) (models.Event, bool) {
	eventID, ok := idParam(c, "id")
	if !ok {
		badRequest(c, msgEventIDRequired)
		return models.Event{}, false
	}

	event, err := env.Store.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventMissing)
			return event, false
		}
		internalError(c, env.Logger, "Failed to fetch event", err, zap.Uint("eventID", eventID))
		return event, false
	}

	if !event.Visible {
		if user, ok := middlewares.CurrentUser(c); !ok || !user.IsAdmin {
			badRequest(c, msgEventMissing)
			return event, false
		}
	}
	return event, true
}

// PublicSubmission は公開ページに表示する提出です。ユーザーの連絡先は含めません。
type PublicSubmission struct {
	models.GameSubmission
	Runner   string  `json:"runner"`
	Pronouns *string `json:"pronouns,omitempty"`
}

// GetEvent はイベントと、提出を公開しているユーザーの提出一覧を返します。
func GetEvent(c *gin.Context, env *Env) {
	event, ok := visibleEvent(c, env)
	if !ok {
		return
	}

	submissions, err := env.Store.ListSubmissions(c.Request.Context(), event.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to list submissions", err, zap.Uint("eventID", event.ID))
		return
	}

	public := make([]PublicSubmission, 0, len(submissions))
	for _, s := range submissions {
		if s.User == nil || !s.User.ShowSubmissions {
			continue
		}
		item := PublicSubmission{Runner: s.User.RunnerName()}
		if s.User.ShowPronouns {
			item.Pronouns = s.User.Pronouns
		}
		s.User = nil
		item.GameSubmission = s
		public = append(public, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"event":       newEventView(event, env.now()),
		"submissions": public,
	})
}

// MyEventPage はログイン中のユーザーがイベントに対して持つ提出と参加可能時間を返します。
// 参加可能時間のレコードが無ければ空で作成します。受付中の場合だけ選択可能な時間枠を含めます。
func MyEventPage(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}
	event, ok := visibleEvent(c, env)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	submissions, err := env.Store.ListUserSubmissions(ctx, event.ID, user.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to list user submissions", err,
			zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
		return
	}

	record, err := env.Store.FindOrCreateAvailability(ctx, user.ID, event.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to load availability", err,
			zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
		return
	}

	view := newEventView(event, env.now())
	res := gin.H{
		"event":        view,
		"submissions":  submissions,
		"availability": record,
		"editable":     view.Phase == window.Open,
	}
	if view.Phase == window.Open {
		res["schedule"] = availability.Grid(event.EventStart, event.EventDurationDays, event.DayStartHour, event.DayEndHour, env.location())
	}
	c.JSON(http.StatusOK, res)
}
