package board

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}

	for _, c := range cases {
		if got := FormatClock(c.seconds); got != c.want {
			t.Errorf("FormatClock(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 0m"},
		{60, "0h 1m"},
		{5400, "1h 30m"},
		{7325, "2h 2m"},
	}

	for _, c := range cases {
		if got := FormatTotal(c.seconds); got != c.want {
			t.Errorf("FormatTotal(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want string
	}{
		{"2024-06-15", "Today"},
		{"2024-06-14", "Yesterday"},
		{"2024-06-16", "Tomorrow"},
		{"2024-06-10", "Monday, Jun 10"},
		{"not-a-date", "not-a-date"},
	}

	for _, c := range cases {
		if got := DayLabel(c.date, now); got != c.want {
			t.Errorf("DayLabel(%q) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-06-30", 1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2024-07-01" {
		t.Errorf("expected month rollover to 2024-07-01, got %s", got)
	}

	got, err = AddDays("2024-03-01", -1)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2024-02-29" {
		t.Errorf("expected leap day 2024-02-29, got %s", got)
	}

	if _, err := AddDays("junk", 1); err == nil {
		t.Error("expected an error for a malformed date")
	}
}
