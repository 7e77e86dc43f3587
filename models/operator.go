package models

import (
	"time"
)

// Operator represents a sewing machine operator.
// Skill sets are capability, not ownership - an operator "can use" a machine
// or process, shared freely with other operators.
type Operator struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OperatorID    string    `gorm:"uniqueIndex;not null" json:"operator_id"` // business key, e.g. "OP001"
	Name          string    `gorm:"not null" json:"name"`
	Designation   string    `gorm:"not null" json:"designation"`
	ContactNumber *string   `json:"contact_number"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	MachineSkills []Machine `gorm:"many2many:operator_machine_skills" json:"machine_skills"`
	ProcessSkills []Process `gorm:"many2many:operator_process_skills" json:"process_skills"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Operator model
func (Operator) TableName() string {
	return "operators"
}

// HasProcessSkill reports whether the operator's process skills include the given process id.
func (o *Operator) HasProcessSkill(processID uint) bool {
	for _, p := range o.ProcessSkills {
		if p.ID == processID {
			return true
		}
	}
	return false
}
