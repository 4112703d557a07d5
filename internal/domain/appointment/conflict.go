package appointment

import (
	"fmt"
	"time"

	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/models"
)

const (
	DefaultDurationMinutes = 60
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
)

// Booking is the scheduling view of a stored appointment.
type Booking struct {
	ID              uint
	ClientName      string
	Date            time.Time
	Time            schedule.TimeOfDay
	DurationMinutes int
	Status          Status
}

func (b Booking) Interval() schedule.Interval {
	return schedule.ToInterval(b.Date, b.Time, b.DurationMinutes)
}

// Label renders the booking the way conflicts are shown to staff.
func (b Booking) Label() string {
	return fmt.Sprintf("%s (%s)", b.ClientName, b.Time)
}

// FromModel converts a stored row. A missing duration reads as the default.
func FromModel(m models.Appointment) (Booking, error) {
	date, err := schedule.ParseDate(m.Date)
	if err != nil {
		return Booking{}, err
	}
	at, err := schedule.ParseTimeOfDay(m.Time)
	if err != nil {
		return Booking{}, err
	}

	duration := m.Duration
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	return Booking{
		ID:              m.ID,
		ClientName:      m.Client.Name,
		Date:            date,
		Time:            at,
		DurationMinutes: duration,
		Status:          Status(m.Status),
	}, nil
}

// Candidate is a proposed appointment. ExcludeID is the id of the
// appointment being edited, zero when creating.
type Candidate struct {
	Date            time.Time
	Time            schedule.TimeOfDay
	DurationMinutes int
	ExcludeID       uint
}

func (c Candidate) Interval() schedule.Interval {
	return schedule.ToInterval(c.Date, c.Time, c.DurationMinutes)
}

// FindConflicts returns every booking in existing that overlaps the
// candidate, in input order. existing is expected to hold the candidate's
// day only; bookings in a terminal status are ignored.
//
// The result is advisory: an empty slice means no conflict.
func FindConflicts(candidate Candidate, existing []Booking) []Booking {
	want := candidate.Interval()

	conflicts := make([]Booking, 0)
	for _, b := range existing {
		if candidate.ExcludeID != 0 && b.ID == candidate.ExcludeID {
			continue
		}
		if b.Status.IsTerminal() {
			continue
		}
		if schedule.Overlaps(want, b.Interval()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// Labels renders conflicts for display.
func Labels(conflicts []Booking) []string {
	out := make([]string, 0, len(conflicts))
	for _, b := range conflicts {
		out = append(out, b.Label())
	}
	return out
}
