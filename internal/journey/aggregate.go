package journey

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
)

var ErrInvalidRange = errors.New("journey: range must be 7, 30 or 90 days")

// ValidRange reports whether days is one of the supported chart ranges.
func ValidRange(days int) bool {
	return days == 7 || days == 30 || days == 90
}

// ChartDataPoint aggregates one day. Averages are nil when the day has no
// value for that metric. CumulativeSavings is the running total up to and
// including this day.
type ChartDataPoint struct {
	DateLabel           string          `json:"date_label"`
	ISODate             string          `json:"iso_date"`
	NicotineUsage       float64         `json:"nicotine_usage"`
	CravingCount        int             `json:"craving_count"`
	CravingIntensityAvg *float64        `json:"craving_intensity_avg"`
	MoodAvg             *float64        `json:"mood_avg"`
	EnergyAvg           *float64        `json:"energy_avg"`
	FocusAvg            *float64        `json:"focus_avg"`
	SleepQualityAvg     *float64        `json:"sleep_quality_avg"`
	CumulativeSavings   decimal.Decimal `json:"cumulative_savings"`
}

type TriggerCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Aggregate struct {
	ChartData     []ChartDataPoint `json:"chart_data"`
	TriggerCounts map[string]int   `json:"-"`
	TotalSavings  decimal.Decimal  `json:"total_savings"`
	// Dropped counts entries skipped because their date did not parse.
	Dropped int `json:"-"`
}

// TriggerData lists trigger counts, most frequent first.
func (a Aggregate) TriggerData() []TriggerCount {
	out := make([]TriggerCount, 0, len(a.TriggerCounts))
	for name, n := range a.TriggerCounts {
		out = append(out, TriggerCount{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v *int) {
	if v == nil {
		return
	}
	m.sum += float64(*v)
	m.count++
}

func (m mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	v := m.sum / float64(m.count)
	return &v
}

type bucket struct {
	day      time.Time
	logged   bool
	used     bool
	usage    float64
	craving  mean
	mood     mean
	energy   mean
	focus    mean
	sleepQlt mean
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BuildAggregate buckets logs into rangeDays consecutive days ending today,
// oldest first. Savings accrue one day's cost of the goal's product on every
// logged day without a "used" entry; days with no entry accrue nothing.
func BuildAggregate(logs []internal.LogEntry, rangeDays int, pricing *internal.Pricing, goal *internal.Goal, now time.Time) (Aggregate, error) {
	if !ValidRange(rangeDays) {
		return Aggregate{}, ErrInvalidRange
	}

	today := StartOfDay(now)
	loc := now.Location()
	first := today.AddDate(0, 0, -(rangeDays - 1))

	buckets := make([]bucket, rangeDays)
	index := make(map[string]int, rangeDays)
	for i := range buckets {
		day := first.AddDate(0, 0, i)
		buckets[i].day = day
		index[day.Format(internal.DateLayout)] = i
	}

	agg := Aggregate{TriggerCounts: make(map[string]int)}
	for _, l := range logs {
		day, ok := l.Day(loc)
		if !ok {
			agg.Dropped++
			continue
		}
		i, ok := index[day.Format(internal.DateLayout)]
		if !ok {
			continue
		}
		b := &buckets[i]
		b.logged = true
		if l.UsedNicotine {
			b.used = true
			b.usage += l.Quantity
		}
		b.craving.add(l.CravingIntensity)
		b.mood.add(l.Mood)
		b.energy.add(l.Energy)
		b.focus.add(l.Focus)
		b.sleepQlt.add(l.SleepQuality)
		if l.CravingTrigger != "" {
			agg.TriggerCounts[l.CravingTrigger]++
		}
	}

	dailyCost := DailyCost(CostBasis(goal), pricing)
	running := decimal.Zero
	agg.ChartData = make([]ChartDataPoint, 0, rangeDays)
	for _, b := range buckets {
		if b.logged && !b.used {
			running = running.Add(dailyCost)
		}
		agg.ChartData = append(agg.ChartData, ChartDataPoint{
			DateLabel:           b.day.Format("Jan 2"),
			ISODate:             b.day.Format(internal.DateLayout),
			NicotineUsage:       b.usage,
			CravingCount:        b.craving.count,
			CravingIntensityAvg: b.craving.value(),
			MoodAvg:             b.mood.value(),
			EnergyAvg:           b.energy.value(),
			FocusAvg:            b.focus.value(),
			SleepQualityAvg:     b.sleepQlt.value(),
			CumulativeSavings:   running,
		})
	}
	agg.TotalSavings = running
	return agg, nil
}
