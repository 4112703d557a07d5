package deposit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/notify"
)

type SweepReport struct {
	RunID   string
	Checked int
	Updated int
	Overdue int
}

// SweepDeposits persists the calendar-derived status of every deposit whose
// stored status follows the pickup date, so that stored and effective
// statuses agree for reports and filters.
type SweepDeposits struct {
	repo     domain.Repository
	notifier notify.Notifier
	clock    schedule.Clock
	log      *zap.Logger
}

func NewSweepDeposits(
	repo domain.Repository,
	notifier notify.Notifier,
	clock schedule.Clock,
	log *zap.Logger,
) *SweepDeposits {
	return &SweepDeposits{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		log:      log.Named("sweep"),
	}
}

func (uc *SweepDeposits) Execute(ctx context.Context) (report SweepReport, err error) {
	report.RunID = uuid.NewString()
	defer func() { metrics.RecordSweep(err) }()

	rows, err := uc.repo.ListDepositsByStatus(ctx, domain.DerivableStatuses())
	if err != nil {
		return report, fmt.Errorf("list deposits: %w", err)
	}

	today := schedule.Today(uc.clock)
	log := uc.log.With(zap.String("run_id", report.RunID))

	var errs []error
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report.Checked++

		stored := domain.Status(row.Status)
		next := effectiveStatus(log, row, today)
		if next == stored {
			continue
		}

		if err := uc.repo.SaveDepositStatus(ctx, row.ID, stored, next, nil); err != nil {
			if errors.Is(err, httperr.ErrAlreadyReleased) || errors.Is(err, httperr.ErrStatusChanged) {
				// changed by staff while the sweep was running
				log.Debug("deposit changed concurrently, skipped", zap.Uint("deposit_id", row.ID))
				continue
			}
			errs = append(errs, fmt.Errorf("deposit %d: %w", row.ID, err))
			continue
		}
		report.Updated++
		metrics.RecordDepositStatus(string(next), "sweep")

		if next != domain.StatusOverdue {
			continue
		}
		report.Overdue++

		ev := notify.NewEvent("deposit_overdue", notify.LevelWarning, "deposit", row.ID,
			fmt.Sprintf("Deposit %d was due for pickup on %s", row.ID, row.PickupDate), uc.clock.Now())
		if err := uc.notifier.Notify(ctx, ev); err != nil {
			log.Warn("overdue notification failed", zap.Uint("deposit_id", row.ID), zap.Error(err))
		}
	}

	log.Info("deposit sweep finished",
		zap.Int("checked", report.Checked),
		zap.Int("updated", report.Updated),
		zap.Int("overdue", report.Overdue),
	)

	return report, errors.Join(errs...)
}
