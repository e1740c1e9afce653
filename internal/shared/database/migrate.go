package database

import (
	"fmt"

	"ticketly/internal/sessions"
	"ticketly/internal/titles"
	"ticketly/internal/venues"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	if err := db.AutoMigrate(
		&titles.Title{},
		&venues.Cinema{},
		&venues.Hall{},
		&venues.HallSeat{},
		&sessions.Session{},
	); err != nil {
		return err
	}

	return MigrateConstraints(db)
}
