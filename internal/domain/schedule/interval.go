package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/tireshop/backoffice/internal/httperr"
)

// Persisted formats for calendar dates and times of day.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, httperr.ErrInvalidDateOrTime
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseDate parses a YYYY-MM-DD calendar date. The result carries no zone
// semantics: it is midnight UTC of that wall-clock date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, httperr.ErrInvalidDateOrTime
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DateOf truncates t to its wall-clock date, read in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// ToInterval combines a date, a time of day and a duration. The duration is
// not clamped to the calendar day.
func ToInterval(date time.Time, at TimeOfDay, durationMinutes int) Interval {
	start := DateOf(date).Add(
		time.Duration(at.Hour)*time.Hour +
			time.Duration(at.Minute)*time.Minute,
	)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps reports whether a and b share at least one instant. Touching
// intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func ValidateDuration(minutes int) error {
	if minutes <= 0 {
		return httperr.ErrInvalidDuration
	}
	return nil
}
