package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/afresh/internal/auth"
	"github.com/yourname/afresh/internal/config"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/storage"
)

type nopLogger struct{}

func (nopLogger) Info(args ...interface{})                  {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})                  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})                 {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Debug(args ...interface{})                 {}
func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Fatal(args ...interface{})                 {}
func (nopLogger) Fatalf(format string, args ...interface{}) {}

const testToken = "MOCK-TOKEN"

var testNow = time.Date(2025, 3, 20, 15, 30, 0, 0, time.UTC)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	repos, err := storage.NewFileRepositories(
		filepath.Join(dir, "log_entries.json"),
		filepath.Join(dir, "goals.json"),
		filepath.Join(dir, "pricing.json"),
		nopLogger{},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	app := NewApplication(nopLogger{}, repos, journey.HealthCatalog(), 400, time.UTC).
		WithClock(func() time.Time { return testNow })
	cfg := &config.Config{Env: config.EnvDevelopment}
	provider := auth.NewLocalAuthProvider(testToken, "u1", nopLogger{})

	r := gin.New()
	r.Use(RequestIDMiddleware())
	RegisterRoutes(r, app, auth.AuthMiddleware(provider, cfg))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestUnauthorized(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/journey/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/journey/dashboard", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostLogEntry_ValidAndInvalid(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/logs", `{"date":"2025-03-20","used_nicotine":false,"mood":8,"scale":10}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID   string `json:"id"`
		Mood *int   `json:"mood"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.Mood)
	assert.Equal(t, 4, *created.Mood)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// used without a product
	w, env = do(t, r, http.MethodPost, "/api/logs", `{"date":"2025-03-20","used_nicotine":true,"quantity":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusBadRequest, env.Error.Code)

	// malformed date
	w, _ = do(t, r, http.MethodPost, "/api/logs", `{"date":"20-03-2025"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// dated after today
	w, env = do(t, r, http.MethodPost, "/api/logs", `{"date":"2025-03-21"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "after today")

	// broken JSON
	w, _ = do(t, r, http.MethodPost, "/api/logs", `{"date":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLogEntries(t *testing.T) {
	r := setupRouter(t)
	for _, d := range []string{"2025-03-20", "2025-03-10", "2025-01-01"} {
		w, _ := do(t, r, http.MethodPost, "/api/logs", `{"date":"`+d+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/logs?days=14", "")
	require.Equal(t, http.StatusOK, w.Code)
	var logs []struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "2025-03-20", logs[0].Date)
	assert.Equal(t, "2025-03-10", logs[1].Date)
	assert.Equal(t, "2025-03-07", env.Meta["since"])

	w, _ = do(t, r, http.MethodGet, "/api/logs?days=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/logs?days=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGoalLifecycle(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(t, r, http.MethodGet, "/api/goal", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/goal", `{"goal_type":"fresher","method":"tapering","product_type":"vape"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, "fresher without a percent")

	w, _ = do(t, r, http.MethodPut, "/api/goal", `{"goal_type":"fresher","method":"tapering","product_type":"vape","reduction_percent":40}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/goal", "")
	require.Equal(t, http.StatusOK, w.Code)
	var goal struct {
		Type             string `json:"goal_type"`
		ReductionPercent int    `json:"reduction_percent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &goal))
	assert.Equal(t, "fresher", goal.Type)
	assert.Equal(t, 40, goal.ReductionPercent)
}

func TestPutPricing(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(t, r, http.MethodPut, "/api/pricing", `{"costs":{"cigar":5}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/pricing", `{"costs":{"vape":6.5}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/goal", `{"goal_type":"afresh","method":"cold-turkey","product_type":"vape"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/journey/savings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		ProductType string `json:"product_type"`
		Projection  struct {
			Daily  decimal.Decimal `json:"daily"`
			Weekly decimal.Decimal `json:"weekly"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "vape", view.ProductType)
	assert.True(t, decimal.NewFromFloat(6.5).Equal(view.Projection.Daily))
	assert.True(t, decimal.NewFromFloat(45.5).Equal(view.Projection.Weekly))
}

func TestDashboard(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(t, r, http.MethodPut, "/api/goal", `{"goal_type":"afresh","method":"cold-turkey","product_type":"cigarette","quit_date":"2025-03-18T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	for _, d := range []string{"2025-03-19", "2025-03-20"} {
		w, _ := do(t, r, http.MethodPost, "/api/logs", `{"date":"`+d+`","mood":4,"craving_intensity":8}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/journey/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		StreakDays             int             `json:"streak_days"`
		MoneySaved             decimal.Decimal `json:"money_saved"`
		LifeRegainedMinutes    int             `json:"life_regained_minutes"`
		RecentHighCravingCount int             `json:"recent_high_craving_count"`
		AvgMood                *float64        `json:"avg_mood"`
		GoalType               string          `json:"goal_type"`
		NextMilestoneLabel     string          `json:"next_milestone_label"`
		DaysSinceQuit          *int            `json:"days_since_quit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.StreakDays)
	assert.True(t, decimal.NewFromInt(20).Equal(stats.MoneySaved))
	assert.Equal(t, 2*journey.MinutesRegainedPerCleanDay, stats.LifeRegainedMinutes)
	assert.Equal(t, 2, stats.RecentHighCravingCount)
	require.NotNil(t, stats.AvgMood)
	assert.InDelta(t, 4.0, *stats.AvgMood, 1e-9)
	assert.Equal(t, "afresh", stats.GoalType)
	assert.Equal(t, "3 days nicotine-free", stats.NextMilestoneLabel)
	require.NotNil(t, stats.DaysSinceQuit)
	assert.Equal(t, 2, *stats.DaysSinceQuit)
}

func TestFutureLogsDoNotInflateStreak(t *testing.T) {
	r := setupRouter(t)

	for _, d := range []string{"2025-03-23", "2025-03-25"} {
		w, _ := do(t, r, http.MethodPost, "/api/logs", `{"date":"`+d+`"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}
	w, _ := do(t, r, http.MethodPost, "/api/logs", `{"date":"2025-03-20","used_nicotine":true,"product_type":"cigarette","quantity":3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/journey/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		StreakDays int             `json:"streak_days"`
		MoneySaved decimal.Decimal `json:"money_saved"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Zero(t, stats.StreakDays)
	assert.True(t, stats.MoneySaved.IsZero())
}

func TestProgress(t *testing.T) {
	r := setupRouter(t)
	w, _ := do(t, r, http.MethodPost, "/api/logs", `{"date":"2025-03-19","craving_intensity":5,"craving_trigger":"stress"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/journey/progress?range=14", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/journey/progress?range=7", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Range     int `json:"range"`
		ChartData []struct {
			ISODate      string `json:"iso_date"`
			CravingCount int    `json:"craving_count"`
		} `json:"chart_data"`
		TriggerData []struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		} `json:"trigger_data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 7, view.Range)
	require.Len(t, view.ChartData, 7)
	assert.Equal(t, "2025-03-14", view.ChartData[0].ISODate)
	assert.Equal(t, "2025-03-20", view.ChartData[6].ISODate)
	assert.Equal(t, 1, view.ChartData[5].CravingCount)
	require.Len(t, view.TriggerData, 1)
	assert.Equal(t, "stress", view.TriggerData[0].Name)
}

func TestTimeline(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/journey/timeline", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tl journey.Timeline
	require.NoError(t, json.Unmarshal(env.Data, &tl))
	assert.False(t, tl.Available)
	assert.Empty(t, tl.Milestones)
	assert.NotEmpty(t, env.Meta["message"])

	w, _ = do(t, r, http.MethodGet, "/api/journey/timeline?category=spiritual", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/goal", `{"goal_type":"afresh","method":"cold-turkey","product_type":"cigarette","quit_date":"2025-03-18T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/journey/timeline?category=mental", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &tl))
	assert.True(t, tl.Available)
	require.Len(t, tl.Milestones, 3)
	for _, m := range tl.Milestones {
		assert.Equal(t, journey.CategoryMental, m.Category)
	}
	assert.Equal(t, journey.StatusUpcoming, tl.Milestones[0].Status)
}
