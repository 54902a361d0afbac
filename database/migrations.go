package database

import (
	"stickyboard/models"

	"gorm.io/gorm"
)

// RunMigrations brings the boards, notes and events tables up to date
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Board{},
		&models.Note{},
		&models.Event{},
	)
}
