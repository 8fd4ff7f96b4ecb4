package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/service"
)

func PostLogEntry(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.LogEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		app.Logger().Debugf("Parsed LogEntryRequest: %+v", body)

		if err := service.ValidateLogEntryRequest(&body, app.Now()); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		entry, err := service.CreateLogEntry(c.Request.Context(), app.LogRepo(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save log entry")
			return
		}

		HandleCreated(c, app.Logger(), entry)
	}
}

func GetLogEntries(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil || days < 1 || days > app.HistoryDays() {
			if err == nil {
				err = errOutOfRange
			}
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid days parameter")
			return
		}

		since := journey.StartOfDay(app.Now()).AddDate(0, 0, -(days - 1)).Format(internal.DateLayout)
		logs, err := app.LogRepo().ListLogEntries(c.Request.Context(), user.ID, since)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch log entries")
			return
		}

		HandleSuccess(c, app.Logger(), logs, map[string]any{"count": len(logs), "since": since})
	}
}
