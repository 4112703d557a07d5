package deposit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
)

// DepositSummary computes the dashboard counters of deposits still held.
type DepositSummary struct {
	repo       domain.Repository
	clock      schedule.Clock
	log        *zap.Logger
	windowDays int
}

func NewDepositSummary(
	repo domain.Repository,
	clock schedule.Clock,
	log *zap.Logger,
	windowDays int,
) *DepositSummary {
	if windowDays <= 0 {
		windowDays = domain.DefaultPickupWindowDays
	}
	return &DepositSummary{
		repo:       repo,
		clock:      clock,
		log:        log,
		windowDays: windowDays,
	}
}

func (uc *DepositSummary) Execute(ctx context.Context) (domain.Summary, error) {
	rows, err := uc.repo.ListDepositsByStatus(ctx, domain.OpenStatuses())
	if err != nil {
		return domain.Summary{}, fmt.Errorf("list deposits: %w", err)
	}

	snapshots := make([]domain.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := domain.FromModel(row)
		if err != nil {
			uc.log.Warn("skipping deposit with unreadable pickup date", zap.Uint("deposit_id", row.ID))
			continue
		}
		snapshots = append(snapshots, snap)
	}

	return domain.Summarize(snapshots, schedule.Today(uc.clock), uc.windowDays), nil
}
