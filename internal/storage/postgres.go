package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
)

//go:embed migrations/*.sql
var migrations embed.FS

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var logColumns = []string{
	"id", "user_id", "log_date", "used_nicotine", "product_type", "quantity",
	"mood", "energy", "focus", "sleep_hours", "sleep_quality",
	"craving_intensity", "craving_trigger", "created_at",
}

var goalColumns = []string{
	"id", "user_id", "goal_type", "method", "product_type", "quit_date",
	"reduction_percent", "timeline_days", "created_at",
}

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, migrate bool, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	p := &PostgresStorage{pool: pool, logger: logger}
	if migrate {
		if err := p.migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return p, nil
}

func (p *PostgresStorage) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(p.pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		p.logger.Errorf("failed to apply migrations: %v", err)
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		p.logger.Infof("applied migration %s in %s", r.Source.Path, r.Duration)
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- LogRepository ---
func (p *PostgresStorage) SaveLogEntry(ctx context.Context, e *internal.LogEntry) error {
	query, args, err := psql.Insert("log_entries").
		Columns(logColumns...).
		Values(e.ID, e.UserID, e.Date, e.UsedNicotine, string(e.ProductType), e.Quantity,
			e.Mood, e.Energy, e.Focus, e.SleepHours, e.SleepQuality,
			e.CravingIntensity, e.CravingTrigger, e.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Errorf("failed to insert log entry: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListLogEntries(ctx context.Context, userID, since string) ([]internal.LogEntry, error) {
	query, args, err := psql.Select(logColumns...).
		From("log_entries").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"log_date": since}).
		OrderBy("log_date DESC", "created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query log entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	logs := []internal.LogEntry{}
	for rows.Next() {
		var (
			l       internal.LogEntry
			day     time.Time
			product string
		)
		err := rows.Scan(&l.ID, &l.UserID, &day, &l.UsedNicotine, &product, &l.Quantity,
			&l.Mood, &l.Energy, &l.Focus, &l.SleepHours, &l.SleepQuality,
			&l.CravingIntensity, &l.CravingTrigger, &l.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan log entry: %v", err)
			return nil, err
		}
		l.Date = day.Format(internal.DateLayout)
		l.ProductType = internal.ProductType(product)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- GoalRepository ---
func (p *PostgresStorage) SetGoal(ctx context.Context, g *internal.Goal) error {
	query, args, err := psql.Insert("goals").
		Columns(goalColumns...).
		Values(g.ID, g.UserID, string(g.Type), g.Method, string(g.ProductType), g.QuitDate,
			g.ReductionPercent, g.TimelineDays, g.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		p.logger.Errorf("failed to insert goal: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetGoal(ctx context.Context, userID string) (*internal.Goal, error) {
	query, args, err := psql.Select(goalColumns...).
		From("goals").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	var (
		g           internal.Goal
		gType, prod string
	)
	err = p.pool.QueryRow(ctx, query, args...).Scan(&g.ID, &g.UserID, &gType, &g.Method, &prod,
		&g.QuitDate, &g.ReductionPercent, &g.TimelineDays, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("storage: goal for %s: %w", userID, internal.ErrNotFound)
	}
	if err != nil {
		p.logger.Errorf("failed to load goal: %v", err)
		return nil, err
	}
	g.Type = internal.GoalType(gType)
	g.ProductType = internal.ProductType(prod)
	return &g, nil
}

// --- PricingRepository ---
func (p *PostgresStorage) SetPricing(ctx context.Context, pr *internal.Pricing) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	del, args, err := psql.Delete("pricing").Where(sq.Eq{"user_id": pr.UserID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, del, args...); err != nil {
		p.logger.Errorf("failed to clear pricing: %v", err)
		return err
	}

	if len(pr.Costs) > 0 {
		ins := psql.Insert("pricing").Columns("user_id", "product_type", "daily_cost", "updated_at")
		for product, cost := range pr.Costs {
			ins = ins.Values(pr.UserID, string(product), cost, pr.UpdatedAt)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			p.logger.Errorf("failed to insert pricing: %v", err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (p *PostgresStorage) GetPricing(ctx context.Context, userID string) (*internal.Pricing, error) {
	query, args, err := psql.Select("product_type", "daily_cost", "updated_at").
		From("pricing").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query pricing: %v", err)
		return nil, err
	}
	defer rows.Close()

	pr := &internal.Pricing{UserID: userID, Costs: map[internal.ProductType]decimal.Decimal{}}
	found := false
	for rows.Next() {
		var (
			product string
			cost    decimal.Decimal
			updated time.Time
		)
		if err := rows.Scan(&product, &cost, &updated); err != nil {
			p.logger.Errorf("failed to scan pricing: %v", err)
			return nil, err
		}
		pr.Costs[internal.ProductType(product)] = cost
		if updated.After(pr.UpdatedAt) {
			pr.UpdatedAt = updated
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("storage: pricing for %s: %w", userID, internal.ErrNotFound)
	}
	return pr, nil
}

// --- Compile-time assertions ---
var _ LogRepository = (*PostgresStorage)(nil)
var _ GoalRepository = (*PostgresStorage)(nil)
var _ PricingRepository = (*PostgresStorage)(nil)
