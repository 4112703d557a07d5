package deposit

import (
	"context"
	"fmt"

	"github.com/tireshop/backoffice/internal/audit"
	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/models"
)

// ChangeDepositStatus sets an open status by hand. Releasing goes through
// ReleaseDeposit.
type ChangeDepositStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewChangeDepositStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeDepositStatus {
	return &ChangeDepositStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ChangeDepositStatus) Execute(
	ctx context.Context,
	staffID uint,
	depositID uint,
	status string,
) (*models.Deposit, error) {

	requested, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	d, err := uc.repo.GetDeposit(ctx, depositID)
	if err != nil {
		return nil, err
	}

	from := d.Status
	next, err := domain.ChangeStatus(domain.Status(d.Status), requested)
	if err != nil {
		return nil, err
	}
	if string(next) == from {
		return d, nil
	}

	if err := uc.repo.SaveDepositStatus(ctx, d.ID, domain.Status(from), next, nil); err != nil {
		return nil, fmt.Errorf("save deposit status: %w", err)
	}
	metrics.RecordDepositStatus(string(next), "manual")
	d.Status = string(next)

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "deposit_status_changed",
		Entity:   "deposit",
		EntityID: &d.ID,
		Metadata: map[string]string{"from": from, "to": d.Status},
	})

	return d, nil
}
