package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/tireshop/backoffice/internal/domain/deposit"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/httperr"
	"github.com/tireshop/backoffice/internal/models"
)

type DepositGormRepository struct {
	db *gorm.DB
}

func NewDepositGormRepository(db *gorm.DB) *DepositGormRepository {
	return &DepositGormRepository{db: db}
}

func (r *DepositGormRepository) GetDeposit(
	ctx context.Context,
	id uint,
) (*models.Deposit, error) {

	var d models.Deposit
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrDepositNotFound
	}
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DepositGormRepository) ListDepositsByStatus(
	ctx context.Context,
	statuses []domain.Status,
) ([]models.Deposit, error) {

	var out []models.Deposit
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statusStrings(statuses)).
		Order("pickup_date ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *DepositGormRepository) ListDeposits(
	ctx context.Context,
	statuses []domain.Status,
	query string,
) ([]models.Deposit, error) {

	q := r.db.WithContext(ctx).
		Joins("Client").
		Where("deposits.status IN ?", statusStrings(statuses))

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where(
			`LOWER("Client"."name") LIKE ? OR LOWER(deposits.tire_size) LIKE ? OR LOWER(deposits.location) LIKE ?`,
			like, like, like,
		)
	}

	var out []models.Deposit
	if err := q.
		Order("deposits.pickup_date ASC").
		Order("deposits.id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *DepositGormRepository) CreateDeposit(
	ctx context.Context,
	d *models.Deposit,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(d).Error
}

// SaveDepositStatus is a compare-and-set on the stored status. When no row
// matches, the current status decides which error the caller sees.
func (r *DepositGormRepository) SaveDepositStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	meta *domain.ReleaseMeta,
) error {

	updates := map[string]any{"status": string(to)}
	if to == domain.StatusReleased && meta != nil {
		updates["release_date"] = schedule.FormatDate(meta.Date)
		updates["release_person"] = meta.Person
		updates["release_notes"] = meta.Notes
	}

	res := r.db.WithContext(ctx).
		Model(&models.Deposit{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var current []string
	if err := r.db.WithContext(ctx).
		Model(&models.Deposit{}).
		Where("id = ?", id).
		Pluck("status", &current).Error; err != nil {
		return err
	}
	switch {
	case len(current) == 0:
		return httperr.ErrDepositNotFound
	case domain.Status(current[0]) == domain.StatusReleased:
		return httperr.ErrAlreadyReleased
	default:
		return httperr.ErrStatusChanged
	}
}

var _ domain.Repository = (*DepositGormRepository)(nil)
