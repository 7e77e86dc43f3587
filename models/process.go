package models

import (
	"time"
)

// Process represents a sewing operation (e.g. "Collar Attach", "Side Seam")
type Process struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Process model
func (Process) TableName() string {
	return "processes"
}
