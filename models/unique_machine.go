package models

import (
	"time"
)

// UniqueMachine represents one physical machine instance on a specific floor/line.
// Line holds the sewing line *name*, not its id - the planner filters machine
// instances by matching this string against the selected line's name, and
// existing data was captured that way.
type UniqueMachine struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MachineTypeID uint      `gorm:"not null;index" json:"machine_type_id"` // foreign key to machines table
	MachineType   Machine   `gorm:"foreignKey:MachineTypeID" json:"machine_type"`
	UniqueID      string    `gorm:"uniqueIndex;not null" json:"unique_id"` // e.g. "M-001"
	Floor         string    `gorm:"not null" json:"floor"`
	Line          string    `gorm:"not null" json:"line"`
	IsUsed        bool      `gorm:"default:false" json:"is_used"` // informational, not an exclusivity lock
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the UniqueMachine model
func (UniqueMachine) TableName() string {
	return "unique_machines"
}
