package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/tireshop/backoffice/internal/domain/appointment"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/metrics"
)

type CheckConflictsInput struct {
	Date            string
	Time            string
	DurationMinutes int
	ExcludeID       uint
}

// CheckConflicts answers whether a proposed slot clashes with the day's
// active appointments. It never blocks anything by itself.
type CheckConflicts struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewCheckConflicts(
	repo domain.Repository,
	log *zap.Logger,
) *CheckConflicts {
	return &CheckConflicts{
		repo: repo,
		log:  log,
	}
}

func (uc *CheckConflicts) Execute(
	ctx context.Context,
	in CheckConflictsInput,
) ([]domain.Booking, error) {

	candidate, err := parseCandidate(in.Date, in.Time, in.DurationMinutes, in.ExcludeID)
	if err != nil {
		return nil, err
	}

	existing, err := loadBookings(ctx, uc.repo, uc.log, candidate.Date)
	if err != nil {
		return nil, err
	}

	conflicts := domain.FindConflicts(candidate, existing)
	metrics.RecordConflictCheck(len(conflicts))

	return conflicts, nil
}

func parseCandidate(date, at string, duration int, excludeID uint) (domain.Candidate, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return domain.Candidate{}, err
	}
	tod, err := schedule.ParseTimeOfDay(at)
	if err != nil {
		return domain.Candidate{}, err
	}
	if err := schedule.ValidateDuration(duration); err != nil {
		return domain.Candidate{}, err
	}

	return domain.Candidate{
		Date:            day,
		Time:            tod,
		DurationMinutes: duration,
		ExcludeID:       excludeID,
	}, nil
}
