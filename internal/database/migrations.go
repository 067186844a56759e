package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what the model tags
// declare. Postgres only: the existence check reads pg_indexes.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Application dashboard filters
		{"applications", "idx_applications_status_created", "status, created_at"},

		// Free-slot scans are always ordered by (date, start_time)
		{"interview_slots", "idx_slots_booked_date", "is_booked, date, start_time"},

		// Assignment deadline sweeps
		{"task_assignments", "idx_assignments_status_due", "status, due_date"},
		{"task_assignments", "idx_assignments_application_id", "application_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
