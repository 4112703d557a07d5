package deposit

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/models"
)

// DepositView is a stored deposit together with its status as of today.
type DepositView struct {
	Deposit         *models.Deposit
	EffectiveStatus domain.Status
}

type GetDeposit struct {
	repo  domain.Repository
	clock schedule.Clock
	log   *zap.Logger
}

func NewGetDeposit(
	repo domain.Repository,
	clock schedule.Clock,
	log *zap.Logger,
) *GetDeposit {
	return &GetDeposit{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

func (uc *GetDeposit) Execute(ctx context.Context, id uint) (*DepositView, error) {
	d, err := uc.repo.GetDeposit(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DepositView{
		Deposit:         d,
		EffectiveStatus: effectiveStatus(uc.log, *d, schedule.Today(uc.clock)),
	}, nil
}

// effectiveStatus falls back to the stored status when the pickup date is unreadable.
func effectiveStatus(log *zap.Logger, d models.Deposit, today time.Time) domain.Status {
	snap, err := domain.FromModel(d)
	if err != nil {
		log.Warn("deposit has unreadable pickup date",
			zap.Uint("deposit_id", d.ID),
			zap.String("pickup_date", d.PickupDate),
		)
		return domain.Status(d.Status)
	}
	return snap.Effective(today)
}
