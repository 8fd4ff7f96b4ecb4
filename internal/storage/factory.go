package storage

import (
	"context"

	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/config"
)

func NewFileRepositories(logsFile, goalsFile, pricingFile string, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(logsFile, goalsFile, pricingFile, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Logs: s, Goals: s, Pricing: s, Close: s.Close}, nil
}

func NewPostgresRepositories(ctx context.Context, dsn string, migrate bool, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(ctx, dsn, migrate, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Logs: s, Goals: s, Pricing: s, Close: s.Close}, nil
}

// New picks the backend named by cfg.DBType.
func New(ctx context.Context, cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	if cfg.DBType == "postgres" {
		return NewPostgresRepositories(ctx, cfg.DBDSN, cfg.DBMigrate, logger)
	}
	return NewFileRepositories(cfg.FileLogs, cfg.FileGoals, cfg.FilePricing, logger)
}
