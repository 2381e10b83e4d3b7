package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgUnexpected         = "An unexpected error occurred. Please try again later."
	msgInvalidBody        = "The request body is invalid."
	msgEventIDRequired    = "Event ID is required"
	msgEventGone          = "This event no longer exists; please refresh the page and try again."
	msgEventMissing       = "This event does not exist."
	msgSubmissionsClosed  = "Submissions are not open for this event."
	msgSubmissionRequired = "Submission ID is required"
	msgSubmissionGone     = "This submission no longer exists; please refresh the page and try again."
	msgNotOwner           = "You do not have access to this submission."
	msgNoCategories       = "You must submit at least one category."
)

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

// internalError は詳細をログにだけ残し、クライアントには汎用メッセージを返します。
func internalError(c *gin.Context, logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	logger.Error(msg, append(fields, zap.Error(err), zap.String("path", c.Request.URL.Path))...)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return singular
	}
	return many
}
