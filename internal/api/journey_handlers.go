package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/service"
)

// loadSnapshot captures now once and reads the user's data. It writes the
// error response itself and reports false on failure.
func loadSnapshot(c *gin.Context, app App) (*service.Snapshot, time.Time, bool) {
	user := currentUser(c)
	now := app.Now()
	snap, err := service.LoadSnapshot(c.Request.Context(), app.LogRepo(), app.GoalRepo(), app.PricingRepo(), user.ID, app.HistoryDays(), now, app.Logger())
	if err != nil {
		HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to load journey data")
		return nil, now, false
	}
	return snap, now, true
}

func GetDashboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, now, ok := loadSnapshot(c, app)
		if !ok {
			return
		}
		stats, err := service.BuildDashboard(snap, app.Catalog(), now)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to compose dashboard")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func GetProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		rangeDays, err := strconv.Atoi(c.DefaultQuery("range", "7"))
		if err != nil || !journey.ValidRange(rangeDays) {
			if err == nil {
				err = journey.ErrInvalidRange
			}
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid range")
			return
		}

		snap, now, ok := loadSnapshot(c, app)
		if !ok {
			return
		}
		view, err := service.BuildProgress(snap, rangeDays, now, app.Logger())
		if errors.Is(err, journey.ErrInvalidRange) {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid range")
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to aggregate progress")
			return
		}
		HandleSuccess(c, app.Logger(), view, nil)
	}
}

func GetTimeline(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, valid := journey.ParseCategory(c.Query("category"))
		if !valid {
			HandleError(c, app.Logger(), errors.New(c.Query("category")), http.StatusBadRequest, "Unknown milestone category")
			return
		}

		snap, now, ok := loadSnapshot(c, app)
		if !ok {
			return
		}
		tl := service.BuildTimeline(snap, app.Catalog(), category, now)
		var meta map[string]any
		if !tl.Available {
			meta = map[string]any{"message": "Set a quit date to see your recovery timeline."}
		}
		HandleSuccess(c, app.Logger(), tl, meta)
	}
}

func GetSavings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, now, ok := loadSnapshot(c, app)
		if !ok {
			return
		}
		view, err := service.BuildSavings(snap, now)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to project savings")
			return
		}
		HandleSuccess(c, app.Logger(), view, nil)
	}
}
