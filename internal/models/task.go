package model

import "time"

// Task is one unit of work for one day. Date partitions the task list;
// display fields are filled by a profile join at read time and never stored.
type Task struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Content         string    `gorm:"not null" json:"content"`
	UserID          string    `gorm:"size:36;index" json:"user_id"`
	Date            string    `gorm:"size:10;not null;index" json:"date"`
	IsCompleted     bool      `gorm:"not null;default:false" json:"is_completed"`
	DurationSeconds int       `gorm:"not null;default:0" json:"duration_seconds"`
	IsTimerRunning  bool      `gorm:"not null;default:false" json:"is_timer_running"`
	CreatedAt       time.Time `json:"created_at"`

	UserEmail     string `gorm:"-" json:"user_email,omitempty"`
	UserName      string `gorm:"-" json:"user_name,omitempty"`
	DurationLabel string `gorm:"-" json:"duration_label,omitempty"`
}
