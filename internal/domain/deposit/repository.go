package deposit

import (
	"context"

	"github.com/tireshop/backoffice/internal/models"
)

type Repository interface {
	GetDeposit(
		ctx context.Context,
		id uint,
	) (*models.Deposit, error)

	ListDepositsByStatus(
		ctx context.Context,
		statuses []Status,
	) ([]models.Deposit, error)

	// ListDeposits returns rows stored under any of statuses whose client
	// name, tire size or location contains query. An empty query matches all.
	ListDeposits(
		ctx context.Context,
		statuses []Status,
		query string,
	) ([]models.Deposit, error)

	CreateDeposit(
		ctx context.Context,
		d *models.Deposit,
	) error

	// SaveDepositStatus moves the stored status from -> to. It fails with
	// ErrStatusChanged when the row no longer holds from, and with
	// ErrAlreadyReleased when it has been released meanwhile. meta is written
	// only together with StatusReleased.
	SaveDepositStatus(
		ctx context.Context,
		id uint,
		from Status,
		to Status,
		meta *ReleaseMeta,
	) error
}
