package appointment

import (
	"context"
	"time"

	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists every appointment of the day, cancelled ones included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointments(ctx, schedule.DateOf(date), nil)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			ClientID:        ap.ClientID,
			ClientName:      ap.Client.Name,
			Date:            ap.Date,
			Time:            ap.Time,
			DurationMinutes: ap.Duration,
			ServiceType:     ap.ServiceType,
			Status:          ap.Status,
			Notes:           ap.Notes,
		}

		if b, err := domain.FromModel(ap); err == nil {
			item.DurationMinutes = b.DurationMinutes
			item.EndTime = b.Interval().End.Format(schedule.TimeLayout)
		}

		out = append(out, item)
	}

	return out, nil
}
