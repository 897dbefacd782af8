// Package db opens the application database connection.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "tours_backend/internal/feature/auth/domain/entity"
	bookingentity "tours_backend/internal/feature/bookings/domain/entity"
	reviewentity "tours_backend/internal/feature/reviews/domain/entity"
	tourentity "tours_backend/internal/feature/tours/domain/entity"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// Opener establishes a database connection from a DSN.
type Opener func(dsn string) (*gorm.DB, error)

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Open connects to PostgreSQL, retrying for up to a minute so the service
// survives a database that comes up slightly later than it does.
func Open(dsn string, runMigrations bool) (*gorm.DB, error) {
	gdb, err := ConnectWithRetry(dsn, connectTimeout, openPostgres)
	if err != nil {
		return nil, err
	}

	if runMigrations {
		if err := Migrate(gdb); err != nil {
			return nil, err
		}
	}

	return gdb, nil
}

// ConnectWithRetry keeps calling opener until it succeeds or the timeout
// elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&authentity.User{},
		&tourentity.Tour{},
		&tourentity.StartDate{},
		&reviewentity.Review{},
		&bookingentity.Booking{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
