package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"submitserver/internal/export"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DownloadSubmissions はイベントの提出をCSVで返します。?layout=wide で横持ちの形式になります。
func DownloadSubmissions(c *gin.Context, env *Env) {
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

	layout, err := export.ParseLayout(c.Query("layout"))
	if err != nil {
		badRequest(c, "Unknown export layout.")
		return
	}

	submissions, err := env.Store.ListSubmissions(ctx, event.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to list submissions", err, zap.Uint("eventID", event.ID))
		return
	}
	records, err := env.Store.ListAvailability(ctx, event.ID)
	if err != nil {
		internalError(c, env.Logger, "Failed to list availability", err, zap.Uint("eventID", event.ID))
		return
	}

	table := export.Build(export.Source{
		Event:        event,
		Submissions:  submissions,
		Availability: records,
	}, layout, env.location())

	var buf bytes.Buffer
	if err := export.Write(&buf, table); err != nil {
		internalError(c, env.Logger, "Failed to write CSV", err, zap.Uint("eventID", event.ID))
		return
	}

	env.Logger.Info("Submissions exported",
		zap.Uint("eventID", event.ID), zap.String("layout", string(layout)), zap.Int("rows", len(table.Rows)))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(event)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
