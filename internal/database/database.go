// Package database opens the portal database, runs migrations, and loads the
// demo fixtures.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/config"
	"pm-ajay/scheme-portal/portal-backend/internal/forum"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/proposals"
	"pm-ajay/scheme-portal/portal-backend/internal/village"
)

// Open connects to the configured backend, SQLite when no DB host is set and
// PostgreSQL otherwise, and migrates the schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.UseSQLite() {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		dialector = postgres.Open(cfg.GetDatabaseURL())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the portal schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&auth.User{},
		&agencies.Agency{},
		&projects.Project{},
		&projects.Milestone{},
		&projects.ProgressHistory{},
		&proposals.Proposal{},
		&village.NeedsAssessment{},
		&village.Feedback{},
		&forum.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
