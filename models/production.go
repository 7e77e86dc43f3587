package models

import (
	"time"
)

// Production accumulates one operator's hourly output under one daily
// assignment. At most one record exists per (daily_assignment, operator,
// date); repeated submissions update it in place.
type Production struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	DailyAssignmentID uint            `gorm:"not null;uniqueIndex:idx_production_key" json:"daily_assignment_id"`
	OperatorID        uint            `gorm:"not null;uniqueIndex:idx_production_key" json:"operator_id"`
	Date              time.Time       `gorm:"not null;uniqueIndex:idx_production_key;index" json:"date"` // UTC midnight, copied from the assignment
	Operator          Operator        `gorm:"foreignKey:OperatorID" json:"operator"`
	SewingLineID      uint            `gorm:"not null;index" json:"sewing_line_id"` // denormalized for the daily report query
	SewingLine        SewingLine      `gorm:"foreignKey:SewingLineID" json:"sewing_line"`
	MachineID         uint            `gorm:"not null" json:"machine_id"`
	Machine           Machine         `gorm:"foreignKey:MachineID" json:"machine"`
	ProcessID         uint            `gorm:"not null" json:"process_id"`
	Process           Process         `gorm:"foreignKey:ProcessID" json:"process"`
	HourlyProduction  []HourlyEntry   `gorm:"foreignKey:ProductionID" json:"hourly_production"`
	TotalProduction   int             `gorm:"not null;default:0" json:"total_production"` // derived, always sum of hourly counts
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Production model
func (Production) TableName() string {
	return "productions"
}

// HourlyEntry is one hour's count within a production record. Entries are
// unique per hour - a repeated hour overwrites the count rather than
// appending a second entry.
type HourlyEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductionID uint      `gorm:"not null;uniqueIndex:idx_hourly_production_hour" json:"production_id"`
	Hour         int       `gorm:"not null;uniqueIndex:idx_hourly_production_hour" json:"hour"` // 0-23
	Count        int       `gorm:"not null;default:0" json:"count"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}

// TableName specifies the table name for the HourlyEntry model
func (HourlyEntry) TableName() string {
	return "hourly_entries"
}

// SetHour records count for the given hour, overwriting any existing entry
// for that hour, and recomputes the total. Returns true when an existing
// entry was overwritten.
func (p *Production) SetHour(hour, count int, now time.Time) bool {
	overwritten := false
	for i := range p.HourlyProduction {
		if p.HourlyProduction[i].Hour == hour {
			p.HourlyProduction[i].Count = count
			overwritten = true
			break
		}
	}
	if !overwritten {
		p.HourlyProduction = append(p.HourlyProduction, HourlyEntry{
			ProductionID: p.ID,
			Hour:         hour,
			Count:        count,
			Timestamp:    now,
		})
	}
	p.RecomputeTotal()
	return overwritten
}

// RecomputeTotal re-derives TotalProduction from the hourly entries.
// TotalProduction is never set independently; every mutation of the hourly
// list goes through this.
func (p *Production) RecomputeTotal() {
	total := 0
	for _, h := range p.HourlyProduction {
		total += h.Count
	}
	p.TotalProduction = total
}
