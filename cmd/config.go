package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"bikeshare/internal/adapters/out/postgres"
	"bikeshare/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. A .env file
// is loaded first when present; real environment variables win over it.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Persistence is enabled when DBHost is set.
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"bikeshare"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Notifications are enabled when RedisAddr is set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"bikeshare.repairs"`

	StationsFile       string        `env:"STATIONS_FILE" envDefault:"configs/stations.yaml"`
	DefaultMoveTime    time.Duration `env:"DEFAULT_MOVE_TIME" envDefault:"5s"`
	RepairWorkers      int64         `env:"REPAIR_WORKERS" envDefault:"16"`
	RentalBillingUnit  time.Duration `env:"RENTAL_BILLING_UNIT" envDefault:"1m"`
	TimeAcceleration   float64       `env:"TIME_ACCELERATION" envDefault:"1"`
	FleetStatsSchedule string        `env:"FLEET_STATS_SCHEDULE" envDefault:"*/10 * * * * *"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// LoadConfig reads envFile (ignored when missing) and parses the environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges env cannot express.
func (c Config) Validate() error {
	var problems []error
	if c.RepairWorkers < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("REPAIR_WORKERS",
			fmt.Errorf("%d is less than 1", c.RepairWorkers)))
	}
	if c.RentalBillingUnit <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("RENTAL_BILLING_UNIT",
			fmt.Errorf("%s is not positive", c.RentalBillingUnit)))
	}
	if c.TimeAcceleration <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("TIME_ACCELERATION",
			fmt.Errorf("%g is not positive", c.TimeAcceleration)))
	}
	if c.DefaultMoveTime < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("DEFAULT_MOVE_TIME",
			fmt.Errorf("%s is negative", c.DefaultMoveTime)))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// PersistenceEnabled reports whether a database is configured.
func (c Config) PersistenceEnabled() bool {
	return c.DBHost != ""
}

// NotificationsEnabled reports whether a Redis server is configured.
func (c Config) NotificationsEnabled() bool {
	return c.RedisAddr != ""
}

// DBSettings returns the connection parameters.
func (c Config) DBSettings() postgres.Settings {
	return postgres.Settings{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SslMode:  c.DBSslMode,
	}
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}
