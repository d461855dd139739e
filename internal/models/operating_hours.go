package models

// OperatingHours holds the three opening templates of a branch as "HH:MM" strings.
// A category with both times empty is closed.
type OperatingHours struct {
	WeekdayOpen  string `gorm:"size:5" json:"weekday_open"`
	WeekdayClose string `gorm:"size:5" json:"weekday_close"`
	WeekendOpen  string `gorm:"size:5" json:"weekend_open"`
	WeekendClose string `gorm:"size:5" json:"weekend_close"`
	HolidayOpen  string `gorm:"size:5" json:"holiday_open"`
	HolidayClose string `gorm:"size:5" json:"holiday_close"`

	// HolidayClosed takes precedence over the holiday template.
	HolidayClosed bool `gorm:"default:false" json:"holiday_closed"`
}
