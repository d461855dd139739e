package models

import "time"

// Customer is the person an appointment is booked for. Walk-in customers have no UserID.
type Customer struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	BranchID uint  `gorm:"index" json:"branch_id"`
	UserID   *uint `gorm:"index" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
