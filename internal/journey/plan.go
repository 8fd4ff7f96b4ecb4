package journey

import (
	"fmt"

	"github.com/yourname/afresh/internal"
)

// Plan is the goal variant the engine branches on: Abstinence or Reduction.
type Plan interface {
	GoalType() internal.GoalType
}

// Abstinence is the afresh plan: no nicotine at all.
type Abstinence struct{}

func (Abstinence) GoalType() internal.GoalType { return internal.GoalAfresh }

// Reduction is the fresher plan: cut usage by Percent.
type Reduction struct {
	Percent      int
	TimelineDays int
}

func (Reduction) GoalType() internal.GoalType { return internal.GoalFresher }

// DailyUsageTarget is 1 - Percent/100. It is a proportion of an implicit
// baseline of one unit, and is compared directly against a day's raw quantity.
func (r Reduction) DailyUsageTarget() float64 {
	return 1 - float64(r.Percent)/100
}

// PlanFor converts a stored goal into its variant. A nil goal yields the
// abstinence plan.
func PlanFor(g *internal.Goal) (Plan, error) {
	if g == nil {
		return Abstinence{}, nil
	}
	switch g.Type {
	case internal.GoalAfresh:
		return Abstinence{}, nil
	case internal.GoalFresher:
		if g.ReductionPercent < 1 || g.ReductionPercent > 99 {
			return nil, fmt.Errorf("journey: reduction percent %d out of range 1..99", g.ReductionPercent)
		}
		return Reduction{Percent: g.ReductionPercent, TimelineDays: g.TimelineDays}, nil
	default:
		return nil, fmt.Errorf("journey: unknown goal type %q", g.Type)
	}
}

// CostBasis is the product whose price drives the savings figures. Without a
// goal or a goal product it is cigarettes.
func CostBasis(g *internal.Goal) internal.ProductType {
	if g == nil || g.ProductType == "" {
		return internal.ProductCigarette
	}
	return g.ProductType
}
