// Package database opens the record database, migrates it and seeds accounts.
package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nehemiah-317/ictlogbook/internal/models"
)

const (
	maxAttempts = 10
	retryDelay  = 2 * time.Second
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects to the database, retrying while it comes up.
func Open(driver, dsn string, log *slog.Logger) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", "driver", driver, "attempt", i, "max_attempts", maxAttempts)

		db, err = open(d, driver)
		if err == nil {
			log.Info("connected to database", "driver", driver)
			return db, nil
		}

		log.Warn("failed to connect to database", "error", err)
		if i < maxAttempts {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
}

// OpenMemory returns a migrated private in-memory sqlite database.
func OpenMemory() (*gorm.DB, error) {
	d, _ := dialector("sqlite", "file::memory:")
	db, err := open(d, "sqlite")
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func open(d gorm.Dialector, driver string) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	// sqlite: one connection, otherwise every connection sees its own :memory: database
	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.SupportRecord{},
		&models.AssetRecord{},
		&models.VendorAssistance{},
		&models.ThermalRollRecord{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
