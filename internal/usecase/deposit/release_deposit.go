package deposit

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tireshop/backoffice/internal/audit"
	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/models"
	"github.com/tireshop/backoffice/internal/notify"
)

const WarningFutureReleaseDate = "future_release_date"

type ReleaseDepositInput struct {
	DepositID uint
	// Date defaults to today when empty.
	Date   string
	Person string
	Notes  string

	StaffID uint
}

type ReleaseDepositResult struct {
	Deposit  *models.Deposit
	Warnings []string
}

// ReleaseDeposit hands stored tires back to the client.
type ReleaseDeposit struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	clock    schedule.Clock
	log      *zap.Logger
}

func NewReleaseDeposit(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
	clock schedule.Clock,
	log *zap.Logger,
) *ReleaseDeposit {
	return &ReleaseDeposit{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		clock:    clock,
		log:      log,
	}
}

func (uc *ReleaseDeposit) Execute(
	ctx context.Context,
	in ReleaseDepositInput,
) (*ReleaseDepositResult, error) {

	today := schedule.Today(uc.clock)

	releaseDate := today
	if strings.TrimSpace(in.Date) != "" {
		d, err := schedule.ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		releaseDate = d
	}

	d, err := uc.repo.GetDeposit(ctx, in.DepositID)
	if err != nil {
		return nil, err
	}

	out, err := domain.Release(domain.Status(d.Status), domain.ReleaseMeta{
		Date:   releaseDate,
		Person: in.Person,
		Notes:  in.Notes,
	}, today)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SaveDepositStatus(ctx, d.ID, domain.Status(d.Status), out.Status, &out.Meta); err != nil {
		return nil, fmt.Errorf("release deposit: %w", err)
	}
	metrics.RecordDepositStatus(string(out.Status), "release")

	date := schedule.FormatDate(out.Meta.Date)
	d.Status = string(out.Status)
	d.ReleaseDate = &date
	d.ReleasePerson = &out.Meta.Person
	d.ReleaseNotes = &out.Meta.Notes

	result := &ReleaseDepositResult{Deposit: d, Warnings: []string{}}
	if out.FutureDated {
		result.Warnings = append(result.Warnings, WarningFutureReleaseDate)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StaffID,
		Action:   "deposit_released",
		Entity:   "deposit",
		EntityID: &d.ID,
		Metadata: map[string]any{
			"release_date": date,
			"person":       out.Meta.Person,
			"future_dated": out.FutureDated,
		},
	})

	ev := notify.NewEvent("deposit_released", notify.LevelSuccess, "deposit", d.ID,
		fmt.Sprintf("Deposit %d released to %s", d.ID, out.Meta.Person), uc.clock.Now())
	if err := uc.notifier.Notify(ctx, ev); err != nil {
		uc.log.Warn("release notification failed", zap.Uint("deposit_id", d.ID), zap.Error(err))
	}

	return result, nil
}
