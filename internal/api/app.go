package api

import (
	"time"

	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/storage"
)

type App interface {
	Logger() internal.Logger
	LogRepo() storage.LogRepository
	GoalRepo() storage.GoalRepository
	PricingRepo() storage.PricingRepository
	Catalog() []journey.Milestone
	HistoryDays() int
	// Now is read once per request; every engine call in that request uses it.
	Now() time.Time
}

type Application struct {
	logger      internal.Logger
	repos       *storage.Repositories
	catalog     []journey.Milestone
	historyDays int
	loc         *time.Location
	clock       func() time.Time
}

func NewApplication(logger internal.Logger, repos *storage.Repositories, catalog []journey.Milestone, historyDays int, loc *time.Location) *Application {
	return &Application{
		logger:      logger,
		repos:       repos,
		catalog:     catalog,
		historyDays: historyDays,
		loc:         loc,
		clock:       time.Now,
	}
}

// WithClock replaces the wall clock, mainly for tests.
func (a *Application) WithClock(clock func() time.Time) *Application {
	a.clock = clock
	return a
}

func (a *Application) Logger() internal.Logger                { return a.logger }
func (a *Application) LogRepo() storage.LogRepository         { return a.repos.Logs }
func (a *Application) GoalRepo() storage.GoalRepository       { return a.repos.Goals }
func (a *Application) PricingRepo() storage.PricingRepository { return a.repos.Pricing }
func (a *Application) Catalog() []journey.Milestone           { return a.catalog }
func (a *Application) HistoryDays() int                       { return a.historyDays }
func (a *Application) Now() time.Time                         { return a.clock().In(a.loc) }

var _ App = (*Application)(nil)
