package models

import (
	"time"
)

// SewingLine represents a production line (e.g. "Line 1", "Finishing Line A")
type SewingLine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Floor     string    `json:"floor"` // optional, e.g. "Floor A"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SewingLine model
func (SewingLine) TableName() string {
	return "sewing_lines"
}
