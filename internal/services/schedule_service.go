package services

import (
	"context"
	"log"

	model "daytrack.com/daytrack/internal/models"
	repository "daytrack.com/daytrack/internal/repositories"
)

const (
	// SettingScheduleURL is the settings key holding the lecture schedule
	// image URL.
	SettingScheduleURL = "schedule_url"

	defaultScheduleURL = "/schedule.jpeg"
)

type ScheduleService struct {
	marks    *repository.MarkRepository
	profiles *repository.ProfileRepository
	settings *repository.SettingsRepository
}

func NewScheduleService(
	marks *repository.MarkRepository,
	profiles *repository.ProfileRepository,
	settings *repository.SettingsRepository,
) *ScheduleService {
	return &ScheduleService{
		marks:    marks,
		profiles: profiles,
		settings: settings,
	}
}

// ScheduleURL returns the configured schedule image URL, falling back to
// the bundled default when the setting is missing or unreadable.
func (s *ScheduleService) ScheduleURL(ctx context.Context) string {
	value, err := s.settings.Get(ctx, SettingScheduleURL)
	if err != nil || value == "" {
		return defaultScheduleURL
	}
	return value
}

func (s *ScheduleService) SetScheduleURL(ctx context.Context, url string) error {
	return s.settings.Set(ctx, SettingScheduleURL, url)
}

// MyMark returns the user's mark for the date, or nil when the day is
// unmarked.
func (s *ScheduleService) MyMark(ctx context.Context, userID, date string) (*model.CalendarMark, error) {
	return s.marks.FindForUserDate(ctx, userID, date)
}

// ToggleMark is the upsert-with-type toggle: no mark creates one, a mark of
// the same type is removed, a mark of a different type changes type in
// place. Returns the resulting mark, nil when the toggle removed it. The
// check-then-write keeps at most one mark per (user, date).
func (s *ScheduleService) ToggleMark(ctx context.Context, userID, date, markType string) (*model.CalendarMark, error) {
	existing, err := s.marks.FindForUserDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.marks.Create(ctx, userID, date, markType)
	}

	if existing.Type == markType {
		if err := s.marks.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.marks.UpdateType(ctx, existing.ID, markType); err != nil {
		return nil, err
	}
	existing.Type = markType
	return existing, nil
}

// MarksForDate returns every mark for a date with owner display fields for
// the HR attendance panel.
func (s *ScheduleService) MarksForDate(ctx context.Context, date string) ([]model.CalendarMark, error) {
	marks, err := s.marks.ListForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(marks) == 0 {
		return marks, nil
	}

	ids := make([]string, 0, len(marks))
	for _, m := range marks {
		ids = append(ids, m.UserID)
	}

	profiles, err := s.profiles.ListByIDs(ctx, ids)
	if err != nil {
		// Display names are cosmetic; the marks themselves still render.
		log.Printf("schedule: profile join failed for %s: %v", date, err)
		profiles = nil
	}

	byID := make(map[string]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	for i := range marks {
		if p, ok := byID[marks[i].UserID]; ok {
			marks[i].UserEmail = p.Email
			marks[i].UserName = displayName(p)
		} else {
			marks[i].UserEmail = "Unknown"
			marks[i].UserName = "Unknown"
		}
	}

	return marks, nil
}
