package internal

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

type ProductType string

const (
	ProductCigarette ProductType = "cigarette"
	ProductVape      ProductType = "vape"
	ProductPouch     ProductType = "pouch"
	ProductGum       ProductType = "gum"
	ProductPatch     ProductType = "patch"
	ProductOther     ProductType = "other"
)

// LogEntry is one user-submitted record for a calendar day.
// Date is kept as the submitted "YYYY-MM-DD" string; records whose date does
// not parse are skipped by the analytics rather than rejected on read.
// Optional metrics are nil when absent. Mood, Energy and Focus are stored on
// the canonical 1–5 scale.
type LogEntry struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Date             string      `json:"date"`
	UsedNicotine     bool        `json:"used_nicotine"`
	ProductType      ProductType `json:"product_type,omitempty"`
	Quantity         float64     `json:"quantity"`
	Mood             *int        `json:"mood,omitempty"`
	Energy           *int        `json:"energy,omitempty"`
	Focus            *int        `json:"focus,omitempty"`
	SleepHours       *float64    `json:"sleep_hours,omitempty"`
	SleepQuality     *int        `json:"sleep_quality,omitempty"`
	CravingIntensity *int        `json:"craving_intensity,omitempty"`
	CravingTrigger   string      `json:"craving_trigger,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Day parses Date as a calendar day in loc.
func (l LogEntry) Day(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, l.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

type GoalType string

const (
	GoalAfresh  GoalType = "afresh"  // complete abstinence
	GoalFresher GoalType = "fresher" // percentage reduction
)

// Goal is the persisted shape of the user's single active plan.
// ReductionPercent is only meaningful for GoalFresher.
type Goal struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Type             GoalType    `json:"goal_type"`
	Method           string      `json:"method"`
	ProductType      ProductType `json:"product_type"`
	QuitDate         *time.Time  `json:"quit_date,omitempty"`
	ReductionPercent int         `json:"reduction_percent,omitempty"`
	TimelineDays     int         `json:"timeline_days,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Pricing maps a product to the user's typical daily spend on it.
type Pricing struct {
	UserID    string                          `json:"user_id"`
	Costs     map[ProductType]decimal.Decimal `json:"costs"`
	UpdatedAt time.Time                       `json:"updated_at"`
}
