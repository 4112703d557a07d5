package appointment

import (
	"time"

	"github.com/tireshop/backoffice/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus moves ap to requested and stamps the matching timestamp.
// On rejection ap is left untouched.
func ApplyStatus(ap *models.Appointment, requested Status, now time.Time) error {
	current := Status(ap.Status)

	next, err := Transition(current, requested)
	if err != nil {
		return err
	}
	if next == current {
		return nil
	}

	ap.Status = string(next)
	switch next {
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusInProgress, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCompleted, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCancelled, now)
}
