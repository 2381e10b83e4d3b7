package handlers

import (
	"net/http"

	"submitserver/internal/validation"
	"submitserver/middlewares"
	"submitserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileResponse は /user/update の応答です。
type ProfileResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// GetCurrentUser はログイン中のユーザーを返します。
func GetCurrentUser(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile はプロフィールの許可された項目だけを更新します。
func UpdateProfile(c *gin.Context, env *Env) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		unauthorized(c, middlewares.MsgNotLoggedIn)
		return
	}

	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		env.Logger.Info("Profile request bind error", zap.Error(err))
		badRequest(c, msgInvalidBody)
		return
	}
	req = req.Normalize()
	if msg := validation.First(req); msg != "" {
		badRequest(c, msg)
		return
	}

	updated, err := env.Store.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		internalError(c, env.Logger, "Failed to update profile", err, zap.Uint("userID", user.ID))
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Message: "Account updated.", User: updated})
}
