package appointment

import (
	"context"
	"fmt"

	"github.com/tireshop/backoffice/internal/audit"
	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/models"
)

type ChangeAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock schedule.Clock
}

func NewChangeAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock schedule.Clock,
) *ChangeAppointmentStatus {
	return &ChangeAppointmentStatus{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *ChangeAppointmentStatus) Execute(
	ctx context.Context,
	staffID uint,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	requested, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	err = domain.ApplyStatus(ap, requested, uc.clock.Now())
	metrics.RecordAppointmentTransition(from, string(requested), err)
	if err != nil {
		return nil, err
	}
	if from == ap.Status {
		return ap, nil
	}

	if _, err := uc.repo.SaveAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "appointment_" + ap.Status,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from},
	})

	return ap, nil
}
