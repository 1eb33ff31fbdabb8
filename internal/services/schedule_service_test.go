package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Task{},
		&model.CalendarMark{},
		&model.AppSetting{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newScheduleService(t *testing.T) (*ScheduleService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewScheduleService(
		repository.NewMarkRepository(db),
		repository.NewProfileRepository(db),
		repository.NewSettingsRepository(db),
	), db
}

func countMarks(t *testing.T, db *gorm.DB, userID, date string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.CalendarMark{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestToggleMarkCreatesThenRemoves(t *testing.T) {
	service, db := newScheduleService(t)
	ctx := context.Background()

	mark, err := service.ToggleMark(ctx, "u1", "2024-06-01", model.MarkTypeCollege)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if mark == nil || mark.Type != model.MarkTypeCollege {
		t.Fatalf("expected a college mark, got %+v", mark)
	}
	if got := countMarks(t, db, "u1", "2024-06-01"); got != 1 {
		t.Fatalf("expected 1 mark, got %d", got)
	}

	mark, err = service.ToggleMark(ctx, "u1", "2024-06-01", model.MarkTypeCollege)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if mark != nil {
		t.Errorf("same-type toggle must remove the mark, got %+v", mark)
	}
	if got := countMarks(t, db, "u1", "2024-06-01"); got != 0 {
		t.Errorf("expected 0 marks, got %d", got)
	}
}

func TestToggleMarkChangesTypeInPlace(t *testing.T) {
	service, db := newScheduleService(t)
	ctx := context.Background()

	first, err := service.ToggleMark(ctx, "u1", "2024-06-01", model.MarkTypeCollege)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	changed, err := service.ToggleMark(ctx, "u1", "2024-06-01", "sick")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if changed == nil || changed.Type != "sick" {
		t.Fatalf("expected type change to sick, got %+v", changed)
	}
	if changed.ID != first.ID {
		t.Errorf("type change must reuse the row, had %s got %s", first.ID, changed.ID)
	}
	if got := countMarks(t, db, "u1", "2024-06-01"); got != 1 {
		t.Errorf("expected exactly 1 mark, got %d", got)
	}
}

func TestToggleMarkSequencesKeepAtMostOne(t *testing.T) {
	service, db := newScheduleService(t)
	ctx := context.Background()

	sequence := []string{
		model.MarkTypeCollege, "sick", "sick",
		model.MarkTypeCollege, model.MarkTypeCollege, "sick",
	}
	for _, markType := range sequence {
		if _, err := service.ToggleMark(ctx, "u1", "2024-06-01", markType); err != nil {
			t.Fatalf("toggle %s failed: %v", markType, err)
		}
		if got := countMarks(t, db, "u1", "2024-06-01"); got > 1 {
			t.Fatalf("invariant broken: %d marks after toggling %s", got, markType)
		}
	}
}

func TestToggleMarkIsolatedPerUserAndDate(t *testing.T) {
	service, db := newScheduleService(t)
	ctx := context.Background()

	if _, err := service.ToggleMark(ctx, "u1", "2024-06-01", model.MarkTypeCollege); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := service.ToggleMark(ctx, "u2", "2024-06-01", model.MarkTypeCollege); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := service.ToggleMark(ctx, "u1", "2024-06-02", model.MarkTypeCollege); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	for _, c := range []struct {
		user, date string
	}{{"u1", "2024-06-01"}, {"u2", "2024-06-01"}, {"u1", "2024-06-02"}} {
		if got := countMarks(t, db, c.user, c.date); got != 1 {
			t.Errorf("(%s, %s): expected 1 mark, got %d", c.user, c.date, got)
		}
	}
}

func TestMyMarkReturnsNilWhenUnmarked(t *testing.T) {
	service, _ := newScheduleService(t)

	mark, err := service.MyMark(context.Background(), "u1", "2024-06-01")
	if err != nil {
		t.Fatalf("my mark failed: %v", err)
	}
	if mark != nil {
		t.Errorf("expected nil for an unmarked day, got %+v", mark)
	}
}

func TestMarksForDateAttachesDisplayNames(t *testing.T) {
	db := setupTestDB(t)
	profiles := repository.NewProfileRepository(db)
	service := NewScheduleService(
		repository.NewMarkRepository(db),
		profiles,
		repository.NewSettingsRepository(db),
	)
	ctx := context.Background()

	if err := profiles.Upsert(ctx, &model.Profile{ID: "u1", Email: "sara@team.test", Name: "Sara", Role: model.RoleMember}); err != nil {
		t.Fatalf("profile upsert failed: %v", err)
	}
	if err := profiles.Upsert(ctx, &model.Profile{ID: "u2", Email: "omar@team.test", Role: model.RoleMember}); err != nil {
		t.Fatalf("profile upsert failed: %v", err)
	}

	for _, user := range []string{"u1", "u2", "ghost"} {
		if _, err := service.ToggleMark(ctx, user, "2024-06-01", model.MarkTypeCollege); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
	}

	marks, err := service.MarksForDate(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("marks for date failed: %v", err)
	}
	if len(marks) != 3 {
		t.Fatalf("expected 3 marks, got %d", len(marks))
	}

	names := map[string]string{}
	for _, m := range marks {
		names[m.UserID] = m.UserName
	}
	if names["u1"] != "Sara" {
		t.Errorf("expected profile name, got %q", names["u1"])
	}
	if names["u2"] != "omar" {
		t.Errorf("expected email local part, got %q", names["u2"])
	}
	if names["ghost"] != "Unknown" {
		t.Errorf("expected Unknown for missing profile, got %q", names["ghost"])
	}
}

func TestScheduleURLDefaultAndOverride(t *testing.T) {
	service, _ := newScheduleService(t)
	ctx := context.Background()

	if got := service.ScheduleURL(ctx); got != "/schedule.jpeg" {
		t.Errorf("expected bundled default, got %q", got)
	}

	if err := service.SetScheduleURL(ctx, "https://cdn.test/s.png"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := service.ScheduleURL(ctx); got != "https://cdn.test/s.png" {
		t.Errorf("expected stored url, got %q", got)
	}

	// Last write wins.
	if err := service.SetScheduleURL(ctx, "https://cdn.test/s2.png"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := service.ScheduleURL(ctx); got != "https://cdn.test/s2.png" {
		t.Errorf("expected latest url, got %q", got)
	}
}
