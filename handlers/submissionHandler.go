package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"submitserver/internal/validation"
	"submitserver/internal/window"
	"submitserver/middlewares"
	"submitserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpsertSubmission は受付中のイベントに対して提出を作成または更新します。
// 件数の上限は作成時にだけ確認し、カテゴリは更新のたびに全て作り直します。
func UpsertSubmission(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}

	eventID, ok := idParam(c, "eventId")
	if !ok {
		badRequest(c, msgEventIDRequired)
		return
	}

	ctx := c.Request.Context()
	event, err := env.Store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgEventMissing)
			return
		}
		internalError(c, env.Logger, "Failed to fetch event", err, zap.Uint("eventID", eventID))
		return
	}

	if event.SubmissionPhase(env.now()) != window.Open {
		badRequest(c, msgSubmissionsClosed)
		return
	}

	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		env.Logger.Info("Submission request bind error", zap.Error(err))
		badRequest(c, msgInvalidBody)
		return
	}

	submission := models.GameSubmission{UserID: user.ID, EventID: event.ID}
	maxCategories := event.MaxCategoriesPerSubmission

	if req.ID != nil && *req.ID != 0 {
		existing, err := env.Store.GetSubmission(ctx, *req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				badRequest(c, msgSubmissionGone)
				return
			}
			internalError(c, env.Logger, "Failed to fetch submission", err, zap.Uint("submissionID", *req.ID))
			return
		}
		if existing.UserID != user.ID {
			unauthorized(c, msgNotOwner)
			return
		}
		if existing.EventID != event.ID {
			badRequest(c, msgSubmissionGone)
			return
		}
		// 上限を下げる前に登録された提出はその件数までは維持できる
		if len(existing.Categories) > maxCategories {
			maxCategories = len(existing.Categories)
		}
		submission = existing
	} else {
		count, err := env.Store.CountSubmissions(ctx, user.ID, event.ID)
		if err != nil {
			internalError(c, env.Logger, "Failed to count submissions", err,
				zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
			return
		}
		if count >= int64(event.MaxSubmissionsPerUser) {
			badRequest(c, fmt.Sprintf("You cannot submit more than %d %s to this event.",
				event.MaxSubmissionsPerUser, plural(event.MaxSubmissionsPerUser, "submission", "submissions")))
			return
		}
	}

	if len(req.Categories) > maxCategories {
		badRequest(c, fmt.Sprintf("You cannot submit more than %d %s to this event.",
			maxCategories, plural(maxCategories, "category", "categories")))
		return
	}
	if len(req.Categories) == 0 {
		badRequest(c, msgNoCategories)
		return
	}

	if msg := validation.First(req); msg != "" {
		badRequest(c, msg)
		return
	}
	if msg := genreError(event, req); msg != "" {
		badRequest(c, msg)
		return
	}

	submission.Apply(req)
	if err := env.Store.SaveSubmission(ctx, &submission); err != nil {
		internalError(c, env.Logger, "Failed to save submission", err,
			zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
		return
	}

	env.Logger.Info("Submission saved",
		zap.Uint("submissionID", submission.ID), zap.Uint("eventID", event.ID), zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, submission)
}

// genreError はジャンルがイベントのジャンル一覧に含まれない場合のメッセージを返します。
func genreError(event models.Event, req models.SubmissionRequest) string {
	if !event.HasGenre(req.PrimaryGenre) {
		return "Genre must be one of this event's genres."
	}
	if req.SecondaryGenre != nil && *req.SecondaryGenre != "" && !event.HasGenre(*req.SecondaryGenre) {
		return "Secondary genre must be one of this event's genres."
	}
	return ""
}

// DeleteSubmission は本人の提出を削除します。受付期間外でも削除できます。
func DeleteSubmission(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}

	submissionID, ok := idParam(c, "id")
	if !ok {
		badRequest(c, msgSubmissionRequired)
		return
	}

	ctx := c.Request.Context()
	existing, err := env.Store.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badRequest(c, msgSubmissionGone)
			return
		}
		internalError(c, env.Logger, "Failed to fetch submission", err, zap.Uint("submissionID", submissionID))
		return
	}
	if existing.UserID != user.ID {
		unauthorized(c, msgNotOwner)
		return
	}

	if err := env.Store.DeleteSubmission(ctx, submissionID); err != nil {
		internalError(c, env.Logger, "Failed to delete submission", err, zap.Uint("submissionID", submissionID))
		return
	}

	env.Logger.Info("Submission deleted", zap.Uint("submissionID", submissionID), zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted."})
}
