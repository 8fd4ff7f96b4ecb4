package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/service"
)

var errOutOfRange = errors.New("value out of range")

func PutGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid request")
			return
		}

		if err := service.ValidateGoalRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Goal validation failed")
			return
		}

		goal, err := service.CreateGoal(c.Request.Context(), app.GoalRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save goal")
			return
		}

		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func GetGoal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		goal, err := app.GoalRepo().GetGoal(c.Request.Context(), user.ID)
		if errors.Is(err, internal.ErrNotFound) {
			HandleError(c, app.Logger(), err, http.StatusNotFound, "No goal set for user")
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch goal")
			return
		}
		HandleSuccess(c, app.Logger(), goal, nil)
	}
}

func PutPricing(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.PricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid request")
			return
		}

		if err := service.ValidatePricingRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Pricing validation failed")
			return
		}

		pricing, err := service.SavePricing(c.Request.Context(), app.PricingRepo(), user, &req)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save pricing")
			return
		}

		HandleSuccess(c, app.Logger(), pricing, nil)
	}
}
