package database

import (
	"fmt"

	"github.com/yukikurage/schedule-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// compositeIndexes back the listing queries that filter on a reference and
// sort by date.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_event_date", "associated_event_id, date"},
	{"tasks", "idx_tasks_account_date", "assigned_account_id, date"},
	{"tasks", "idx_tasks_status_date", "status, date"},
}

// Migrate creates or updates the schema and its indexes
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations")

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Event{},
		&models.Task{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// AddIndexes creates the composite indexes that are not declared on models
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
