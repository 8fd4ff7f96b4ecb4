package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/afresh/internal"
)

func TestComputeStreak_Abstinence(t *testing.T) {
	tests := []struct {
		name string
		logs []internal.LogEntry
		want int
	}{
		{"no logs", nil, 0},
		{"used today", []internal.LogEntry{used(fixedNow, 0, 3), clean(fixedNow, 1)}, 0},
		{
			"three clean then used",
			[]internal.LogEntry{clean(fixedNow, 0), clean(fixedNow, 1), clean(fixedNow, 2), used(fixedNow, 3, 1), clean(fixedNow, 4)},
			3,
		},
		{
			"unsorted input",
			[]internal.LogEntry{used(fixedNow, 3, 1), clean(fixedNow, 1), clean(fixedNow, 0), clean(fixedNow, 2)},
			3,
		},
		{
			"gap does not break the streak",
			[]internal.LogEntry{clean(fixedNow, 0), clean(fixedNow, 3), used(fixedNow, 4, 2)},
			2,
		},
		{
			"malformed date is ignored",
			[]internal.LogEntry{clean(fixedNow, 0), {Date: "not-a-date", UsedNicotine: true, Quantity: 4}, clean(fixedNow, 1)},
			2,
		},
		{
			"same-day entries merge, any use breaks",
			[]internal.LogEntry{clean(fixedNow, 0), used(fixedNow, 0, 1), clean(fixedNow, 1)},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.logs, Abstinence{}, fixedNow.Location())
			assert.Equal(t, tt.want, got.StreakDays)
		})
	}
}

func TestComputeStreak_ReductionBoundary(t *testing.T) {
	plan := Reduction{Percent: 50}
	assert.InDelta(t, 0.5, plan.DailyUsageTarget(), 1e-12)

	atTarget := []internal.LogEntry{used(fixedNow, 0, 0.5)}
	assert.Equal(t, 1, ComputeStreak(atTarget, plan, fixedNow.Location()).StreakDays)

	overTarget := []internal.LogEntry{used(fixedNow, 0, 0.51)}
	assert.Equal(t, 0, ComputeStreak(overTarget, plan, fixedNow.Location()).StreakDays)
}

func TestComputeStreak_ReductionAlternatingHistory(t *testing.T) {
	logs := []internal.LogEntry{
		clean(fixedNow, 0),
		used(fixedNow, 1, 0),
		clean(fixedNow, 2),
		used(fixedNow, 3, 1),
		clean(fixedNow, 4),
		used(fixedNow, 5, 1),
	}
	got := ComputeStreak(logs, Reduction{Percent: 50}, fixedNow.Location())
	assert.Equal(t, 3, got.StreakDays)
}

func TestPlanFor(t *testing.T) {
	p, err := PlanFor(nil)
	require.NoError(t, err)
	assert.Equal(t, Abstinence{}, p)

	p, err = PlanFor(&internal.Goal{Type: internal.GoalFresher, ReductionPercent: 40, TimelineDays: 60})
	require.NoError(t, err)
	assert.Equal(t, Reduction{Percent: 40, TimelineDays: 60}, p)

	_, err = PlanFor(&internal.Goal{Type: internal.GoalFresher, ReductionPercent: 0})
	assert.Error(t, err)

	_, err = PlanFor(&internal.Goal{Type: "banana"})
	assert.Error(t, err)
}
