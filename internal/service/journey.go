package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/storage"
)

// Snapshot is everything the analytics engine reads for one request.
// Goal and Pricing are nil when the user has not set them.
type Snapshot struct {
	Logs    []internal.LogEntry
	Goal    *internal.Goal
	Pricing *internal.Pricing
}

type ProgressView struct {
	Range        int                      `json:"range"`
	ChartData    []journey.ChartDataPoint `json:"chart_data"`
	TriggerData  []journey.TriggerCount   `json:"trigger_data"`
	TotalSavings decimal.Decimal          `json:"total_savings"`
}

type SavingsView struct {
	ProductType internal.ProductType `json:"product_type"`
	Projection  journey.Projection   `json:"projection"`
	StreakDays  int                  `json:"streak_days"`
	Cumulative  decimal.Decimal      `json:"cumulative"`
}

// LoadSnapshot reads historyDays of logs plus the goal and pricing. A missing
// goal or pricing record is not an error; any other read failure is returned.
// A stored goal the engine cannot interpret is logged and read as abstinence.
func LoadSnapshot(ctx context.Context, logs storage.LogRepository, goals storage.GoalRepository, prices storage.PricingRepository, userID string, historyDays int, now time.Time, logger internal.Logger) (*Snapshot, error) {
	since := journey.StartOfDay(now).AddDate(0, 0, -(historyDays - 1)).Format(internal.DateLayout)

	entries, err := logs.ListLogEntries(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	goal, err := goals.GetGoal(ctx, userID)
	if err != nil && !errors.Is(err, internal.ErrNotFound) {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	pricing, err := prices.GetPricing(ctx, userID)
	if err != nil && !errors.Is(err, internal.ErrNotFound) {
		return nil, fmt.Errorf("get pricing: %w", err)
	}

	return &Snapshot{Logs: entries, Goal: usableGoal(goal, logger), Pricing: pricing}, nil
}

// usableGoal downgrades a stored goal the engine cannot interpret to an
// abstinence goal, keeping its quit date and product.
func usableGoal(goal *internal.Goal, logger internal.Logger) *internal.Goal {
	if goal == nil {
		return nil
	}
	if _, err := journey.PlanFor(goal); err != nil {
		logger.Warnf("goal %s for user %s is unusable, treating as abstinence: %v", goal.ID, goal.UserID, err)
		cp := *goal
		cp.Type = internal.GoalAfresh
		cp.ReductionPercent = 0
		return &cp
	}
	return goal
}

func BuildDashboard(snap *Snapshot, catalog []journey.Milestone, now time.Time) (journey.DashboardStats, error) {
	return journey.ComposeStats(snap.Logs, snap.Goal, snap.Pricing, catalog, now)
}

func BuildProgress(snap *Snapshot, rangeDays int, now time.Time, logger internal.Logger) (*ProgressView, error) {
	agg, err := journey.BuildAggregate(snap.Logs, rangeDays, snap.Pricing, snap.Goal, now)
	if err != nil {
		return nil, err
	}
	if agg.Dropped > 0 {
		logger.Debugf("progress: skipped %d log entries with unparseable dates", agg.Dropped)
	}
	return &ProgressView{
		Range:        rangeDays,
		ChartData:    agg.ChartData,
		TriggerData:  agg.TriggerData(),
		TotalSavings: agg.TotalSavings,
	}, nil
}

// BuildTimeline projects the catalog from the goal's quit date and applies
// the optional category filter after projection.
func BuildTimeline(snap *Snapshot, catalog []journey.Milestone, category journey.Category, now time.Time) journey.Timeline {
	var quit *time.Time
	if snap.Goal != nil {
		quit = snap.Goal.QuitDate
	}
	tl := journey.ProjectMilestones(catalog, quit, now)
	tl.Milestones = journey.FilterByCategory(tl.Milestones, category)
	return tl
}

func BuildSavings(snap *Snapshot, now time.Time) (*SavingsView, error) {
	plan, err := journey.PlanFor(snap.Goal)
	if err != nil {
		return nil, err
	}
	product := journey.CostBasis(snap.Goal)
	daily := journey.DailyCost(product, snap.Pricing)
	streak := journey.ComputeStreak(snap.Logs, plan, now.Location()).StreakDays
	return &SavingsView{
		ProductType: product,
		Projection:  journey.ProjectSavings(daily),
		StreakDays:  streak,
		Cumulative:  journey.CumulativeSavings(streak, daily),
	}, nil
}
