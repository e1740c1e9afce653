package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes the scheduler and storefront rely on
// that gorm tags cannot express.
func MigrateConstraints(db *gorm.DB) error {
	// Coverage checks read every session of a title ordered by start
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_movie_starts
		ON sessions (movie_id, starts_at);
	`).Error
	if err != nil {
		return err
	}

	// Hall layouts are read row by row
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_hall_seats_layout
		ON hall_seats (hall_id, row_index, seat_column);
	`).Error
	if err != nil {
		return err
	}

	// Catalog imports look titles up by external reference
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_titles_external_ref
		ON titles (external_ref) WHERE external_ref <> '';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
