package deposit

import (
	"time"

	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
)

// Derive returns the effective status of a deposit on today. Only Active and
// DueForPickup follow the calendar; every other status is returned as stored.
func Derive(stored Status, pickupDate, today time.Time) Status {
	if stored != StatusActive && stored != StatusDueForPickup {
		return stored
	}

	pickup := schedule.DateOf(pickupDate)
	day := schedule.DateOf(today)

	switch {
	case day.After(pickup):
		return StatusOverdue
	case day.Equal(pickup):
		return StatusDueForPickup
	default:
		return StatusActive
	}
}

// ValidateDates checks a new deposit's dates.
func ValidateDates(depositDate, pickupDate time.Time) error {
	if schedule.DateOf(pickupDate).Before(schedule.DateOf(depositDate)) {
		return httperr.ErrInvalidPickupDate
	}
	return nil
}
