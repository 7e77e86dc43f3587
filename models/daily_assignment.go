package models

import (
	"time"
)

// Attendance statuses for an operator assignment row.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLeave   = "Leave"
)

// ValidStatus reports whether s is one of the recognized attendance statuses.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLeave
}

// DailyAssignment is one sewing line's plan for one calendar day.
// Date is always UTC midnight so repeated submissions for the same day
// collide on the unique (date, sewing_line_id) index.
type DailyAssignment struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	Date         time.Time            `gorm:"not null;uniqueIndex:idx_assignments_date_line" json:"date"`
	SewingLineID uint                 `gorm:"not null;uniqueIndex:idx_assignments_date_line" json:"sewing_line_id"`
	SewingLine   SewingLine           `gorm:"foreignKey:SewingLineID" json:"sewing_line"`
	Assignments  []OperatorAssignment `gorm:"foreignKey:DailyAssignmentID" json:"assignments"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// TableName specifies the table name for the DailyAssignment model
func (DailyAssignment) TableName() string {
	return "daily_assignments"
}

// OperatorAssignment is one operator's row within a daily plan.
type OperatorAssignment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DailyAssignmentID uint      `gorm:"not null;index" json:"daily_assignment_id"`
	Position          int       `gorm:"not null" json:"position"` // preserves the submitted row order
	OperatorID        uint      `gorm:"not null;index" json:"operator_id"`
	Operator          Operator  `gorm:"foreignKey:OperatorID" json:"operator"`
	Status            string    `gorm:"not null" json:"status"` // Present, Absent, Leave
	MachineID         *uint     `json:"machine_id"`
	Machine           *Machine  `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	ProcessID         *uint     `json:"process_id"`
	Process           *Process  `gorm:"foreignKey:ProcessID" json:"process,omitempty"`
	TargetProduction  int       `gorm:"not null;default:0" json:"target_production"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OperatorAssignment model
func (OperatorAssignment) TableName() string {
	return "operator_assignments"
}

// Normalize enforces the attendance business rule on a single row: an
// Absent or Leave operator carries no machine, no process, and a zero
// target, regardless of what the caller submitted.
func (a *OperatorAssignment) Normalize() {
	if a.Status == StatusAbsent || a.Status == StatusLeave {
		a.MachineID = nil
		a.Machine = nil
		a.ProcessID = nil
		a.Process = nil
		a.TargetProduction = 0
	}
}
