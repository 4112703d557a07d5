package deposit

import (
	"context"
	"fmt"
	"strings"

	"github.com/tireshop/backoffice/internal/audit"
	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/models"
)

const defaultQuantity = 4

type CreateDepositInput struct {
	ClientID    uint
	DepositDate string
	PickupDate  string
	TireSize    string
	TireType    string
	Quantity    int
	Location    string
	Notes       string
	Reserved    bool

	StaffID uint
}

type CreateDeposit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock schedule.Clock
}

func NewCreateDeposit(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock schedule.Clock,
) *CreateDeposit {
	return &CreateDeposit{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute stores a new deposit. An empty deposit date means today.
func (uc *CreateDeposit) Execute(
	ctx context.Context,
	in CreateDepositInput,
) (*models.Deposit, error) {

	if in.ClientID == 0 {
		return nil, httperr.ErrClientRequired
	}

	depositDate := schedule.Today(uc.clock)
	if strings.TrimSpace(in.DepositDate) != "" {
		d, err := schedule.ParseDate(in.DepositDate)
		if err != nil {
			return nil, err
		}
		depositDate = d
	}

	pickupDate, err := schedule.ParseDate(in.PickupDate)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateDates(depositDate, pickupDate); err != nil {
		return nil, err
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = defaultQuantity
	}

	d := &models.Deposit{
		ClientID:    in.ClientID,
		DepositDate: schedule.FormatDate(depositDate),
		PickupDate:  schedule.FormatDate(pickupDate),
		TireSize:    in.TireSize,
		TireType:    in.TireType,
		Quantity:    quantity,
		Location:    in.Location,
		Notes:       in.Notes,
		Status:      string(domain.InitialStatus(in.Reserved)),
	}

	if err := uc.repo.CreateDeposit(ctx, d); err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StaffID,
		Action:   "deposit_created",
		Entity:   "deposit",
		EntityID: &d.ID,
	})

	return d, nil
}
