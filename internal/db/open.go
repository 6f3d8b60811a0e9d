package db

import (
	"fmt"  // Error wrapping
	"time" // Pool lifetimes

	"hobbymatch/internal/config" // Custom import path (Config)

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM (pgx)
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM log level
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = mysql.Open(dsn)
	}
	gcfg := &gorm.Config{TranslateError: true}
	if cfg.IsProd {
		gcfg.Logger = logger.Default.LogMode(logger.Error) // Only log failed queries in production
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
