package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "daytrack.com/daytrack/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Task{},
		&model.CalendarMark{},
		&model.AppSetting{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
