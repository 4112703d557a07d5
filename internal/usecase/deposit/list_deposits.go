package deposit

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
)

type ListDepositsInput struct {
	// Statuses filters on the effective status. Empty means all open deposits.
	Statuses []string
	Query    string
}

// ListDeposits backs the open, due-for-pickup, overdue and released lists.
type ListDeposits struct {
	repo  domain.Repository
	clock schedule.Clock
	log   *zap.Logger
}

func NewListDeposits(
	repo domain.Repository,
	clock schedule.Clock,
	log *zap.Logger,
) *ListDeposits {
	return &ListDeposits{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (uc *ListDeposits) Execute(ctx context.Context, in ListDepositsInput) ([]DepositView, error) {
	wanted := map[domain.Status]bool{}
	var effective []domain.Status
	for _, raw := range in.Statuses {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		s, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, httperr.ErrInvalidStatus
		}
		if !wanted[s] {
			wanted[s] = true
			effective = append(effective, s)
		}
	}
	if len(effective) == 0 {
		effective = domain.OpenStatuses()
		for _, s := range effective {
			wanted[s] = true
		}
	}

	rows, err := uc.repo.ListDeposits(ctx, domain.StoredStatusesFor(effective), in.Query)
	if err != nil {
		return nil, err
	}

	today := schedule.Today(uc.clock)
	out := make([]DepositView, 0, len(rows))
	for i := range rows {
		status := effectiveStatus(uc.log, rows[i], today)
		if !wanted[status] {
			continue
		}
		out = append(out, DepositView{Deposit: &rows[i], EffectiveStatus: status})
	}

	return out, nil
}
