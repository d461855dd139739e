package models

import (
	"time"

	"gorm.io/datatypes"
)

type LeaveRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint    `gorm:"index;not null" json:"stylist_id"`
	Stylist   Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// inclusive, date only
	StartDate datatypes.Date `gorm:"type:date;not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"type:date;not null" json:"end_date"`

	Reason string `gorm:"size:255" json:"reason"`
	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	DecidedBy *uint      `json:"decided_by"`
	DecidedAt *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
