package database

import (
	"fmt"
	"strings"

	"ordersync/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS sync_runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		status TEXT DEFAULT 'RUNNING',
		orders_synced INTEGER DEFAULT 0,
		events_emitted INTEGER DEFAULT 0,
		error TEXT,
		started_at TIMESTAMP,
		completed_at TIMESTAMP,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

// CreateSyncRun inserts a new run record.
func (d *Database) CreateSyncRun(run *models.SyncRun) error {
	return d.DB.Create(run).Error
}

// SaveSyncRun persists updates to an existing run record.
func (d *Database) SaveSyncRun(run *models.SyncRun) error {
	return d.DB.Save(run).Error
}

// RecentSyncRuns returns the most recently started runs.
func (d *Database) RecentSyncRuns(limit int) ([]models.SyncRun, error) {
	var runs []models.SyncRun
	err := d.DB.Order("started_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
