package journey

import (
	"sort"
	"time"

	"github.com/yourname/afresh/internal"
)

type StreakResult struct {
	StreakDays int `json:"streak_days"`
}

type dayRecord struct {
	day      time.Time
	used     bool
	quantity float64
}

// ComputeStreak counts consecutive qualifying days backward from the most
// recent logged day. Logs may arrive in any order. Entries with an unparseable
// date are ignored, and entries sharing a day are merged (quantities summed,
// used if any entry used). Days with no entry are skipped rather than treated
// as a break.
func ComputeStreak(logs []internal.LogEntry, plan Plan, loc *time.Location) StreakResult {
	days := collapseDays(logs, loc)

	streak := 0
	for _, d := range days {
		if !qualifies(d, plan) {
			break
		}
		streak++
	}
	return StreakResult{StreakDays: streak}
}

func qualifies(d dayRecord, plan Plan) bool {
	switch p := plan.(type) {
	case Reduction:
		return !d.used || d.quantity <= p.DailyUsageTarget()
	case Abstinence:
		return !d.used
	default:
		return !d.used
	}
}

// collapseDays returns one record per parseable day, newest first.
func collapseDays(logs []internal.LogEntry, loc *time.Location) []dayRecord {
	byDay := make(map[time.Time]*dayRecord, len(logs))
	for _, l := range logs {
		day, ok := l.Day(loc)
		if !ok {
			continue
		}
		rec, exists := byDay[day]
		if !exists {
			rec = &dayRecord{day: day}
			byDay[day] = rec
		}
		if l.UsedNicotine {
			rec.used = true
			rec.quantity += l.Quantity
		}
	}

	out := make([]dayRecord, 0, len(byDay))
	for _, rec := range byDay {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].day.After(out[j].day)
	})
	return out
}
