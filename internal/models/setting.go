package model

// AppSetting is a single key/value row shared by all users. No versioning;
// last write wins.
type AppSetting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
