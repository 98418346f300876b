package db

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-registry/config"
	"hostel-registry/internal/model"
)

// Init opens the in-memory SQLite database and runs migrations.
func Init(cfg *config.StoreConfig) (*gorm.DB, error) {
	if !IsMemoryDSN(cfg.DSN) {
		return nil, fmt.Errorf("store.dsn %q is not an in-memory database", cfg.DSN)
	}

	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// A shared-cache memory database disappears with its last connection and
	// locks per table, so keep exactly one.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.RoomAssignment{},
		&model.WaitlistEntry{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// IsMemoryDSN reports whether dsn names a SQLite in-memory database.
// Only file: URIs carry query parameters through to SQLite.
func IsMemoryDSN(dsn string) bool {
	if dsn == ":memory:" {
		return true
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme != "file" {
		return false
	}
	return strings.HasPrefix(u.Opaque, ":memory:") || u.Query().Get("mode") == "memory"
}
