package journey

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
)

const (
	// HighCravingThreshold is the intensity at which a craving counts as high.
	HighCravingThreshold = 7
	// MinutesRegainedPerCleanDay assumes 20 cigarettes a day at 11 minutes each.
	MinutesRegainedPerCleanDay = 20 * 11

	recentWindowDays = 7
	baselineDays     = 7
)

var streakLadder = []int{1, 3, 7, 14, 30, 90, 180, 365}

type DashboardStats struct {
	StreakDays               int                 `json:"streak_days"`
	ReductionAchievedPercent *float64            `json:"reduction_achieved_percent,omitempty"`
	MoneySaved               decimal.Decimal     `json:"money_saved"`
	LifeRegainedMinutes      int                 `json:"life_regained_minutes"`
	RecentHighCravingCount   int                 `json:"recent_high_craving_count"`
	AvgMood                  *float64            `json:"avg_mood"`
	AvgEnergy                *float64            `json:"avg_energy"`
	AvgFocus                 *float64            `json:"avg_focus"`
	GoalType                 internal.GoalType   `json:"goal_type"`
	NextMilestoneLabel       string              `json:"next_milestone_label"`
	NextMilestoneDate        *time.Time          `json:"next_milestone_date,omitempty"`
	DaysSinceQuit            *int                `json:"days_since_quit,omitempty"`
	NextHealthMilestone      *ProjectedMilestone `json:"next_health_milestone,omitempty"`
}

// ComposeStats assembles the dashboard summary from one snapshot of logs,
// goal and pricing, all evaluated against the same now.
func ComposeStats(logs []internal.LogEntry, goal *internal.Goal, pricing *internal.Pricing, catalog []Milestone, now time.Time) (DashboardStats, error) {
	plan, err := PlanFor(goal)
	if err != nil {
		return DashboardStats{}, err
	}
	loc := now.Location()
	today := StartOfDay(now)

	streak := ComputeStreak(logs, plan, loc).StreakDays
	dailyCost := DailyCost(CostBasis(goal), pricing)

	stats := DashboardStats{
		StreakDays:          streak,
		MoneySaved:          CumulativeSavings(streak, dailyCost),
		LifeRegainedMinutes: streak * MinutesRegainedPerCleanDay,
		GoalType:            plan.GoalType(),
	}

	var mood, energy, focus mean
	windowStart := today.AddDate(0, 0, -(recentWindowDays - 1))
	for _, l := range logs {
		day, ok := l.Day(loc)
		if !ok || day.Before(windowStart) || day.After(today) {
			continue
		}
		if l.CravingIntensity != nil && *l.CravingIntensity >= HighCravingThreshold {
			stats.RecentHighCravingCount++
		}
		mood.add(l.Mood)
		energy.add(l.Energy)
		focus.add(l.Focus)
	}
	stats.AvgMood = mood.value()
	stats.AvgEnergy = energy.value()
	stats.AvgFocus = focus.value()

	if _, ok := plan.(Reduction); ok {
		stats.ReductionAchievedPercent = reductionAchieved(logs, loc, windowStart, today)
	}

	threshold := nextThreshold(streak)
	stats.NextMilestoneLabel = thresholdLabel(threshold, plan)
	target := today.AddDate(0, 0, threshold-streak)
	stats.NextMilestoneDate = &target

	if goal != nil && goal.QuitDate != nil {
		since := int(math.Round(today.Sub(StartOfDay(goal.QuitDate.In(loc))).Hours() / 24))
		if since < 0 {
			since = 0
		}
		stats.DaysSinceQuit = &since

		timeline := ProjectMilestones(catalog, goal.QuitDate, now)
		if next, ok := NextMilestone(timeline.Milestones); ok {
			stats.NextHealthMilestone = &next
		}
	}

	return stats, nil
}

// nextThreshold is the smallest ladder step strictly above streak. Past one
// year the ladder continues in whole years.
func nextThreshold(streak int) int {
	for _, t := range streakLadder {
		if t > streak {
			return t
		}
	}
	return (streak/365 + 1) * 365
}

func thresholdLabel(days int, plan Plan) string {
	suffix := "nicotine-free"
	if _, ok := plan.(Reduction); ok {
		suffix = "on target"
	}

	var span string
	switch {
	case days == 1:
		return "First day " + suffix
	case days == 3:
		span = "3 days"
	case days == 7:
		span = "1 week"
	case days == 14:
		span = "2 weeks"
	case days == 30:
		span = "1 month"
	case days == 90:
		span = "3 months"
	case days == 180:
		span = "6 months"
	case days == 365:
		span = "1 year"
	case days%365 == 0:
		span = fmt.Sprintf("%d years", days/365)
	default:
		span = fmt.Sprintf("%d days", days)
	}
	return span + " " + suffix
}

// reductionAchieved compares average daily usage over the recent window with
// the average over the earliest logged days. Nil when either side has no data
// or the baseline is zero.
func reductionAchieved(logs []internal.LogEntry, loc *time.Location, windowStart, today time.Time) *float64 {
	days := collapseDays(logs, loc)
	if len(days) == 0 {
		return nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })

	var baseline, recent mean
	for i, d := range days {
		if i < baselineDays {
			baseline.sum += d.quantity
			baseline.count++
		}
		if !d.day.Before(windowStart) && !d.day.After(today) {
			recent.sum += d.quantity
			recent.count++
		}
	}
	b, r := baseline.value(), recent.value()
	if b == nil || r == nil || *b <= 0 {
		return nil
	}
	pct := (*b - *r) / *b * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}
