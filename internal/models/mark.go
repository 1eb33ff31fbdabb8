package model

import "time"

// MarkTypeCollege is the only mark type the UI currently offers.
const MarkTypeCollege = "college"

// CalendarMark records that a user claims a day as a college day (or
// another type). At most one mark exists per (user, date); the schedule
// service enforces this with a check-then-write, there is no DB constraint.
type CalendarMark struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"user_id"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`

	UserEmail string `gorm:"-" json:"user_email,omitempty"`
	UserName  string `gorm:"-" json:"user_name,omitempty"`
}
