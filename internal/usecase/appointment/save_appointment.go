package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tireshop/backoffice/internal/audit"
	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/models"
)

type SaveAppointmentInput struct {
	// ID is zero when creating.
	ID uint

	ClientID        uint
	VehicleID       *uint
	Date            string
	Time            string
	DurationMinutes int
	ServiceType     string
	Notes           string

	// Status is optional; when set it must be reachable from the current status.
	Status string

	// Force saves even when the slot clashes with other appointments.
	Force bool

	StaffID uint
}

type SaveAppointmentResult struct {
	Appointment *models.Appointment
	Saved       bool
	Conflicts   []domain.Booking
}

// SaveAppointment creates or edits an appointment. A clashing slot is not
// saved unless the caller forces it; the clashing bookings are returned
// either way.
type SaveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock schedule.Clock
	log   *zap.Logger
}

func NewSaveAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock schedule.Clock,
	log *zap.Logger,
) *SaveAppointment {
	return &SaveAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
		log:   log,
	}
}

func (uc *SaveAppointment) Execute(
	ctx context.Context,
	in SaveAppointmentInput,
) (*SaveAppointmentResult, error) {

	candidate, err := parseCandidate(in.Date, in.Time, in.DurationMinutes, in.ID)
	if err != nil {
		return nil, err
	}
	if in.ClientID == 0 {
		return nil, httperr.ErrClientRequired
	}

	var requested domain.Status
	if in.Status != "" {
		if requested, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	result := &SaveAppointmentResult{Conflicts: []domain.Booking{}}

	err = uc.repo.WithDateLock(ctx, candidate.Date, func(tx domain.Repository) error {
		ap := &models.Appointment{Status: string(domain.InitialStatus())}

		if in.ID != 0 {
			existing, err := tx.GetAppointment(ctx, in.ID)
			if err != nil {
				return err
			}
			if rescheduled(existing, candidate) {
				if err := domain.CanReschedule(domain.Status(existing.Status)); err != nil {
					return err
				}
			}
			ap = existing
		}

		from := ap.Status
		if requested != "" {
			if err := domain.ApplyStatus(ap, requested, uc.clock.Now()); err != nil {
				metrics.RecordAppointmentTransition(from, string(requested), err)
				return err
			}
		}

		if !domain.Status(ap.Status).IsTerminal() {
			existing, err := loadBookings(ctx, tx, uc.log, candidate.Date)
			if err != nil {
				return err
			}
			result.Conflicts = domain.FindConflicts(candidate, existing)
			metrics.RecordConflictCheck(len(result.Conflicts))

			if len(result.Conflicts) > 0 {
				if !in.Force {
					return nil
				}
				metrics.RecordConflictOverride()
			}
		}

		ap.ClientID = in.ClientID
		ap.VehicleID = in.VehicleID
		ap.Date = schedule.FormatDate(candidate.Date)
		ap.Time = candidate.Time.String()
		ap.Duration = candidate.DurationMinutes
		ap.ServiceType = in.ServiceType
		ap.Notes = in.Notes

		if _, err := tx.SaveAppointment(ctx, ap); err != nil {
			return fmt.Errorf("save appointment: %w", err)
		}
		if requested != "" {
			metrics.RecordAppointmentTransition(from, string(requested), nil)
		}

		result.Appointment = ap
		result.Saved = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Saved {
		return result, nil
	}

	action := "appointment_created"
	if in.ID != 0 {
		action = "appointment_updated"
	}

	var meta map[string]any
	if len(result.Conflicts) > 0 {
		meta = map[string]any{"forced_over": domain.Labels(result.Conflicts)}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StaffID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &result.Appointment.ID,
		Metadata: meta,
	})

	return result, nil
}

func rescheduled(ap *models.Appointment, c domain.Candidate) bool {
	duration := ap.Duration
	if duration <= 0 {
		duration = domain.DefaultDurationMinutes
	}
	return ap.Date != schedule.FormatDate(c.Date) ||
		ap.Time != c.Time.String() ||
		duration != c.DurationMinutes
}
