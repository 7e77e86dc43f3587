package models

import (
	"time"
)

// Machine represents a machine type used on the sewing floor (e.g. "Juki DDL-9000")
type Machine struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Machine model
func (Machine) TableName() string {
	return "machines"
}
