package board

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD date by the given number of days.
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// FormatClock renders a duration as HH:MM:SS.
func FormatClock(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatTotal renders a duration the way the day header shows it, with
// integer truncation: 5400 seconds is "1h 30m".
func FormatTotal(totalSeconds int) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// DayLabel renders a date relative to now: Today, Yesterday, Tomorrow, or
// the weekday with a short date.
func DayLabel(date string, now time.Time) string {
	switch date {
	case now.Format(DateLayout):
		return "Today"
	case now.AddDate(0, 0, -1).Format(DateLayout):
		return "Yesterday"
	case now.AddDate(0, 0, 1).Format(DateLayout):
		return "Tomorrow"
	}

	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2")
}
