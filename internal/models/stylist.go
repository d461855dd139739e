package models

import "time"

type Stylist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `json:"user_id"`

	BranchID uint   `gorm:"index;not null" json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
