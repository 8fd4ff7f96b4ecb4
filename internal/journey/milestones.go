package journey

import (
	"fmt"
	"math"
	"slices"
	"time"
)

type Category string

const (
	CategoryPhysical Category = "physical"
	CategoryMental   Category = "mental"
	CategoryLongTerm Category = "long-term"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusCurrent   Status = "current"
	StatusUpcoming  Status = "upcoming"
)

// Offset positions a milestone after the quit date. Exact is added as a
// duration; Days is added as calendar days so DST shifts keep the wall clock.
type Offset struct {
	Exact time.Duration `json:"exact,omitempty"`
	Days  int           `json:"days,omitempty"`
}

func (o Offset) apply(t time.Time) time.Time {
	return t.Add(o.Exact).AddDate(0, 0, o.Days)
}

type Milestone struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Offset      Offset   `json:"offset"`
	Category    Category `json:"category"`
}

type ProjectedMilestone struct {
	Milestone
	AbsoluteDate  time.Time `json:"absolute_date"`
	Status        Status    `json:"status"`
	TimeRemaining string    `json:"time_remaining"`
}

// Timeline is the projector's result. Available is false when no quit date
// is set; Milestones is then empty.
type Timeline struct {
	Available  bool                 `json:"available"`
	Milestones []ProjectedMilestone `json:"milestones"`
}

var healthCatalog = []Milestone{
	{ID: "heart-rate", Title: "Heart rate normalizes", Description: "Your heart rate and blood pressure begin to drop.", Offset: Offset{Exact: 20 * time.Minute}, Category: CategoryPhysical},
	{ID: "oxygen", Title: "Oxygen levels recover", Description: "Carbon monoxide in your blood falls and oxygen returns to normal.", Offset: Offset{Exact: 8 * time.Hour}, Category: CategoryPhysical},
	{ID: "heart-attack-risk", Title: "Heart attack risk drops", Description: "Your risk of heart attack starts to decrease.", Offset: Offset{Exact: 24 * time.Hour}, Category: CategoryPhysical},
	{ID: "taste-smell", Title: "Taste and smell improve", Description: "Damaged nerve endings start to regrow.", Offset: Offset{Exact: 48 * time.Hour}, Category: CategoryPhysical},
	{ID: "nicotine-free-body", Title: "Nicotine leaves your body", Description: "Nicotine is cleared and breathing becomes easier.", Offset: Offset{Exact: 72 * time.Hour}, Category: CategoryPhysical},
	{ID: "peak-withdrawal", Title: "Peak withdrawal passes", Description: "Irritability and cravings begin to ease.", Offset: Offset{Days: 5}, Category: CategoryMental},
	{ID: "circulation", Title: "Circulation improves", Description: "Walking and exercise get easier as circulation improves.", Offset: Offset{Days: 14}, Category: CategoryPhysical},
	{ID: "mood-stabilizes", Title: "Mood stabilizes", Description: "Anxiety and stress levels drop below where they were while using.", Offset: Offset{Days: 30}, Category: CategoryMental},
	{ID: "lung-function", Title: "Lung function increases", Description: "Lung capacity improves by up to 30 percent.", Offset: Offset{Days: 90}, Category: CategoryPhysical},
	{ID: "habit-broken", Title: "Habit loop broken", Description: "Most daily triggers no longer prompt cravings.", Offset: Offset{Days: 180}, Category: CategoryMental},
	{ID: "cilia", Title: "Lungs clear themselves", Description: "Cilia regrow and coughing and shortness of breath decrease.", Offset: Offset{Days: 270}, Category: CategoryLongTerm},
	{ID: "heart-disease-half", Title: "Heart disease risk halved", Description: "Your excess risk of coronary heart disease is half that of a user.", Offset: Offset{Days: 365}, Category: CategoryLongTerm},
	{ID: "stroke-risk", Title: "Stroke risk reduced", Description: "Stroke risk falls to that of a non-user.", Offset: Offset{Days: 5 * 365}, Category: CategoryLongTerm},
	{ID: "lung-cancer-half", Title: "Lung cancer risk halved", Description: "Risk of dying from lung cancer is about half that of a user.", Offset: Offset{Days: 10 * 365}, Category: CategoryLongTerm},
	{ID: "heart-disease-normal", Title: "Heart disease risk normal", Description: "Coronary heart disease risk matches a non-user's.", Offset: Offset{Days: 15 * 365}, Category: CategoryLongTerm},
}

// HealthCatalog returns a copy of the built-in recovery milestones.
func HealthCatalog() []Milestone {
	return slices.Clone(healthCatalog)
}

// ProjectMilestones places every catalog entry on the calendar relative to
// quitDate and classifies it against now. With no quit date it returns an
// unavailable timeline.
func ProjectMilestones(catalog []Milestone, quitDate *time.Time, now time.Time) Timeline {
	if quitDate == nil || quitDate.IsZero() {
		return Timeline{Available: false, Milestones: []ProjectedMilestone{}}
	}

	out := make([]ProjectedMilestone, 0, len(catalog))
	for _, m := range catalog {
		at := m.Offset.apply(*quitDate)
		status, remaining := classify(at, now)
		out = append(out, ProjectedMilestone{
			Milestone:     m,
			AbsoluteDate:  at,
			Status:        status,
			TimeRemaining: remaining,
		})
	}
	return Timeline{Available: true, Milestones: out}
}

func classify(at, now time.Time) (Status, string) {
	if at.Before(now) {
		return StatusCompleted, "Completed!"
	}
	diff := at.Sub(now)
	days := int(diff / (24 * time.Hour))
	switch {
	case days == 0:
		// under a day away, so never report a full 24 hours
		hours := min(int(math.Ceil(diff.Hours())), 23)
		return StatusCurrent, fmt.Sprintf("%d hours to go", hours)
	case days == 1:
		return StatusUpcoming, "1 day to go"
	default:
		return StatusUpcoming, fmt.Sprintf("%d days to go", days)
	}
}

// FilterByCategory keeps milestones of cat. An empty cat keeps everything.
func FilterByCategory(ms []ProjectedMilestone, cat Category) []ProjectedMilestone {
	if cat == "" {
		return ms
	}
	out := make([]ProjectedMilestone, 0, len(ms))
	for _, m := range ms {
		if m.Category == cat {
			out = append(out, m)
		}
	}
	return out
}

// NextMilestone returns the earliest milestone that is not completed.
func NextMilestone(ms []ProjectedMilestone) (ProjectedMilestone, bool) {
	var next ProjectedMilestone
	found := false
	for _, m := range ms {
		if m.Status == StatusCompleted {
			continue
		}
		if !found || m.AbsoluteDate.Before(next.AbsoluteDate) {
			next, found = m, true
		}
	}
	return next, found
}

func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case "", CategoryPhysical, CategoryMental, CategoryLongTerm:
		return c, true
	}
	return "", false
}
