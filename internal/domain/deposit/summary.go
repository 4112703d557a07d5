package deposit

import (
	"time"

	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/models"
)

const DefaultPickupWindowDays = 7

// Snapshot is the status-relevant view of a stored deposit.
type Snapshot struct {
	ID         uint
	Status     Status
	PickupDate time.Time
}

func FromModel(m models.Deposit) (Snapshot, error) {
	pickup, err := schedule.ParseDate(m.PickupDate)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ID: m.ID, Status: Status(m.Status), PickupDate: pickup}, nil
}

func (s Snapshot) Effective(today time.Time) Status {
	return Derive(s.Status, s.PickupDate, today)
}

type Summary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	DueSoon  int `json:"due_soon"`
	Overdue  int `json:"overdue"`
	Reserved int `json:"reserved"`
}

// Summarize counts open deposits by effective status. DueSoon counts deposits
// not yet overdue whose pickup date falls within windowDays from today.
func Summarize(deposits []Snapshot, today time.Time, windowDays int) Summary {
	day := schedule.DateOf(today)
	horizon := day.AddDate(0, 0, windowDays)

	var s Summary
	for _, d := range deposits {
		effective := d.Effective(day)
		if effective == StatusReleased {
			continue
		}
		s.Total++

		switch effective {
		case StatusActive:
			s.Active++
		case StatusOverdue:
			s.Overdue++
		case StatusReserved:
			s.Reserved++
		}

		if effective == StatusActive || effective == StatusDueForPickup {
			pickup := schedule.DateOf(d.PickupDate)
			if !pickup.Before(day) && !pickup.After(horizon) {
				s.DueSoon++
			}
		}
	}
	return s
}
