package storage

import (
	"context"

	"github.com/yourname/afresh/internal"
)

// LogRepository stores daily log entries. ListLogEntries returns the user's
// entries dated on or after since ("YYYY-MM-DD"), newest first.
type LogRepository interface {
	SaveLogEntry(ctx context.Context, entry *internal.LogEntry) error
	ListLogEntries(ctx context.Context, userID, since string) ([]internal.LogEntry, error)
}

// GoalRepository holds one active goal per user; GetGoal returns
// internal.ErrNotFound when none is set.
type GoalRepository interface {
	SetGoal(ctx context.Context, goal *internal.Goal) error
	GetGoal(ctx context.Context, userID string) (*internal.Goal, error)
}

// PricingRepository returns internal.ErrNotFound when the user never set prices.
type PricingRepository interface {
	SetPricing(ctx context.Context, pricing *internal.Pricing) error
	GetPricing(ctx context.Context, userID string) (*internal.Pricing, error)
}

type Repositories struct {
	Logs    LogRepository
	Goals   GoalRepository
	Pricing PricingRepository
	Close   func() error
}
