package postgres

import (
	"fmt"

	"bikeshare/internal/adapters/out/postgres/bicyclerepo"
	"bikeshare/internal/adapters/out/postgres/rentalrepo"
	"bikeshare/internal/adapters/out/postgres/repairlogrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings are the connection parameters.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// DSN renders the settings in the key=value form understood by the pgx driver.
func (s Settings) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SslMode)
}

// Open connects with GORM's SQL logging silenced.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the bicycles, rentals and repair_log tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&bicyclerepo.BicycleDTO{}, &rentalrepo.RentalDTO{}, &repairlogrepo.RepairDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
