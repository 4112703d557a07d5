package appointment

import (
	"context"
	"time"

	"github.com/tireshop/backoffice/internal/models"
)

type Repository interface {
	// -------- Read --------
	// ListAppointments returns the appointments of one date, optionally
	// restricted to statuses (nil means all), ordered by time.
	ListAppointments(
		ctx context.Context,
		date time.Time,
		statuses []Status,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// -------- Write --------
	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) (uint, error)

	// WithDateLock runs fn while holding an exclusive lock on date, so that a
	// conflict check and the following write are not interleaved with another
	// writer for the same day.
	WithDateLock(
		ctx context.Context,
		date time.Time,
		fn func(repo Repository) error,
	) error
}
