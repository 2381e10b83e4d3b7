package handlers

import (
	"errors"
	"net/http"
	"time"

	"submitserver/internal/availability"
	"submitserver/internal/validation"
	"submitserver/middlewares"
	"submitserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const msgSlotOutsideSchedule = "Availability must fall within the event's schedule."

// SetAvailability はユーザーのイベントに対する参加可能時間を置き換えます。
func SetAvailability(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}

	eventID, ok := idParam(c, "id")
	if !ok {
		badRequest(c, msgEventIDRequired)
		return
	}

	ctx := c.Request.Context()
	event, err := env.Store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventGone)
			return
		}
		internalError(c, env.Logger, "Failed to fetch event", err, zap.Uint("eventID", eventID))
		return
	}

	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		env.Logger.Info("Availability request bind error", zap.Error(err))
		badRequest(c, msgInvalidBody)
		return
	}
	if msg := validation.First(req); msg != "" {
		badRequest(c, msg)
		return
	}

	grid := availability.Grid(event.EventStart, event.EventDurationDays, event.DayStartHour, event.DayEndHour, env.location())
	for _, slot := range req.Slots {
		if !availability.InGrid(grid, slot) {
			badRequest(c, msgSlotOutsideSchedule)
			return
		}
	}

	record := models.EventAvailability{
		UserID:  user.ID,
		EventID: event.ID,
		Slots:   datatypes.JSONSlice[time.Time](req.Slots),
	}
	if record.Slots == nil {
		record.Slots = datatypes.JSONSlice[time.Time]{}
	}
	if err := env.Store.UpsertAvailability(ctx, &record); err != nil {
		internalError(c, env.Logger, "Failed to save availability", err,
			zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated."})
}
