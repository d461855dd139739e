package models

import (
	"time"

	"gorm.io/datatypes"
)

// Holiday with a nil BranchID applies to every branch.
type Holiday struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	BranchID *uint `gorm:"index" json:"branch_id"`

	Date            datatypes.Date `gorm:"type:date;not null;index" json:"date"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	RecurringYearly bool           `gorm:"default:false" json:"recurring_yearly"`

	CreatedAt time.Time `json:"created_at"`
}
