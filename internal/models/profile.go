package model

import "time"

// Profile carries the display and role data for a user. Its ID equals the
// user's ID; the row is written best-effort during sign-up.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"not null" json:"email"`
	Name      string    `json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
