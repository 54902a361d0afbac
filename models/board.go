package models

import "time"

// Board is a named collection of notes. Name is the external key used in
// URLs and is unique across all boards.
type Board struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Notes     []Note    `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
