package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API on r. auth guards everything under /api.
func RegisterRoutes(r gin.IRouter, app App, auth gin.HandlerFunc) {
	g := r.Group("/api", auth)

	g.POST("/logs", PostLogEntry(app))
	g.GET("/logs", GetLogEntries(app))
	g.PUT("/goal", PutGoal(app))
	g.GET("/goal", GetGoal(app))
	g.PUT("/pricing", PutPricing(app))

	j := g.Group("/journey")
	j.GET("/dashboard", GetDashboard(app))
	j.GET("/progress", GetProgress(app))
	j.GET("/timeline", GetTimeline(app))
	j.GET("/savings", GetSavings(app))
}
