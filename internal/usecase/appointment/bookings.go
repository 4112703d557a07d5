package appointment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/appointment"
)

// loadBookings reads the appointments of date that can still conflict.
// Rows whose date or time cannot be parsed are skipped.
func loadBookings(
	ctx context.Context,
	repo domain.Repository,
	log *zap.Logger,
	date time.Time,
) ([]domain.Booking, error) {

	rows, err := repo.ListAppointments(ctx, date, domain.ActiveStatuses())
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := domain.FromModel(row)
		if err != nil {
			log.Warn("skipping appointment with unreadable slot",
				zap.Uint("appointment_id", row.ID),
				zap.String("date", row.Date),
				zap.String("time", row.Time),
			)
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
