package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/storage"
)

type GoalRequest struct {
	Type             internal.GoalType    `json:"goal_type" validate:"required,oneof=afresh fresher"`
	Method           string               `json:"method" validate:"required,oneof=cold-turkey gradual-reduction tapering nrt harm-reduction"`
	ProductType      internal.ProductType `json:"product_type" validate:"required,oneof=cigarette vape pouch gum patch other"`
	QuitDate         *time.Time           `json:"quit_date,omitempty"`
	ReductionPercent int                  `json:"reduction_percent,omitempty" validate:"required_if=Type fresher,omitempty,gte=1,lte=99"`
	TimelineDays     int                  `json:"timeline_days,omitempty" validate:"gte=0"`
}

func ValidateGoalRequest(req *GoalRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	return nil
}

// CreateGoal replaces the user's active goal.
func CreateGoal(ctx context.Context, goalRepo storage.GoalRepository, user *internal.User, req *GoalRequest) (*internal.Goal, error) {
	goal := &internal.Goal{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Type:         req.Type,
		Method:       req.Method,
		ProductType:  req.ProductType,
		QuitDate:     req.QuitDate,
		TimelineDays: req.TimelineDays,
		CreatedAt:    time.Now(),
	}
	if req.Type == internal.GoalFresher {
		goal.ReductionPercent = req.ReductionPercent
	}
	if err := goalRepo.SetGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
