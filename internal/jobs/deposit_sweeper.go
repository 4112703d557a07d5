package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	ucDeposit "github.com/tireshop/backoffice/internal/usecase/deposit"
)

// Sweeper is one pass over the stored deposit statuses.
type Sweeper interface {
	Execute(ctx context.Context) (ucDeposit.SweepReport, error)
}

// DepositSweeper runs a Sweeper on a cron schedule. Runs never overlap.
type DepositSweeper struct {
	cron   *cron.Cron
	sweep  Sweeper
	logger *zap.Logger

	mu  sync.Mutex
	ctx context.Context
}

func NewDepositSweeper(spec string, sweep Sweeper, logger *zap.Logger) (*DepositSweeper, error) {
	s := &DepositSweeper{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		sweep:  sweep,
		logger: logger.Named("jobs"),
		ctx:    context.Background(),
	}

	if _, err := s.cron.AddFunc(spec, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run sweeps once right away, then on schedule until ctx is done. It waits
// for a running sweep to finish before returning.
func (s *DepositSweeper) Run(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.runOnce()
	s.cron.Start()

	<-ctx.Done()
	<-s.cron.Stop().Done()
}

func (s *DepositSweeper) runOnce() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	report, err := s.sweep.Execute(ctx)
	if err != nil {
		s.logger.Error("deposit sweep failed",
			zap.String("run_id", report.RunID),
			zap.Error(err),
		)
	}
}
