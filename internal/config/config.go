package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

type Config struct {
	Env             string        `env:"APP_ENV"          env-default:"development"`
	LogLevel        string        `env:"LOG_LEVEL"        env-default:"info"`
	HTTPAddr        string        `env:"HTTP_ADDR"        env-default:":8088"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	DBType    string `env:"STORAGE_BACKEND"  env-default:"file"`
	DBDSN     string `env:"POSTGRES_DSN"`
	DBMigrate bool   `env:"POSTGRES_MIGRATE" env-default:"true"`

	FileLogs    string `env:"LOGS_FILE"    env-default:"data/log_entries.json"`
	FileGoals   string `env:"GOALS_FILE"   env-default:"data/goals.json"`
	FilePricing string `env:"PRICING_FILE" env-default:"data/pricing.json"`

	AuthToken      string `env:"AUTH_TOKEN"       env-default:"MOCK-TOKEN"`
	AuthUserID     string `env:"AUTH_USER_ID"     env-default:"u1"`
	AuthServiceURL string `env:"AUTH_SERVICE_URL"`

	Timezone    string `env:"TIMEZONE"     env-default:"Local"`
	HistoryDays int    `env:"HISTORY_DAYS" env-default:"400"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads the configuration once per process. A .env file in the working
// directory is applied first; real environment variables take precedence.
func Load() *Config {
	once.Do(func() {
		c, err := Read(".env")
		if err != nil {
			panic("Invalid config: " + err.Error())
		}
		cfg = c
	})
	return cfg
}

// Read builds a Config from dotenvPath (if it exists) and the environment.
func Read(dotenvPath string) (*Config, error) {
	var c Config
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := cleanenv.ReadConfig(dotenvPath, &c); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", dotenvPath, err)
		}
	} else if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.DBType != "file" && c.DBType != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileLogs == "" || c.FileGoals == "" || c.FilePricing == "") {
		return errors.New("File storage requires LOGS_FILE, GOALS_FILE and PRICING_FILE to be set")
	}
	if c.Env != EnvDevelopment && c.Env != EnvStaging && c.Env != EnvProduction {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != EnvDevelopment && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is not a valid IANA zone: %w", err)
	}
	if c.HistoryDays < 90 {
		return errors.New("HISTORY_DAYS must cover the 90-day chart range")
	}
	return nil
}

// Location returns the zone that defines local-day boundaries.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
