package audit

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/digishop/internal/config"
	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/pkg/metrics"
)

const (
	defaultInterval = time.Minute
	pageSize        = 500
	checkers        = 4
)

type Repo interface {
	Audit(ctx context.Context, afterUserID int64, limit int) ([]domain.AccountAudit, error)
}

// Service periodically checks that every balance equals approved deposits
// minus orders and is not negative. It only reports, it never repairs.
type Service struct {
	repo           Repo
	limit          int
	updateInterval time.Duration
}

func New(cfg *config.Config, repo Repo) *Service {
	interval := cfg.AuditInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		repo:           repo,
		limit:          pageSize,
		updateInterval: interval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Ledger audit started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping ledger audit")
			return
		case <-ticker.C:
			mismatches, err := s.Run(ctx)
			metrics.ObserveAuditRun(err)
			if err != nil {
				zap.L().Error("Ledger audit failed", zap.Error(err))
				continue
			}
			metrics.SetAuditMismatches(mismatches)
		}
	}
}

// Run performs one full pass and returns the number of inconsistent accounts.
// Pages are read sequentially while checkers consume them concurrently.
func (s *Service) Run(ctx context.Context) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	pages := make(chan []domain.AccountAudit, checkers)
	var mismatches atomic.Int64

	g.Go(func() error {
		defer close(pages)
		var after int64
		for {
			page, err := s.repo.Audit(ctx, after, s.limit)
			if err != nil {
				return err
			}
			if len(page) == 0 {
				return nil
			}
			select {
			case pages <- page:
			case <-ctx.Done():
				return ctx.Err()
			}
			if len(page) < s.limit {
				return nil
			}
			after = page[len(page)-1].UserID
		}
	})

	for i := 0; i < checkers; i++ {
		g.Go(func() error {
			for page := range pages {
				mismatches.Add(int64(check(page)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(mismatches.Load()), nil
}

func check(page []domain.AccountAudit) int {
	var n int
	for _, a := range page {
		if a.Consistent() {
			continue
		}
		n++
		zap.L().Warn("Ledger mismatch",
			zap.Int64("user_id", a.UserID),
			zap.Int64("balance", a.Balance),
			zap.Int64("expected", a.Expected()),
			zap.Int64("deposited_total", a.DepositedTotal),
			zap.Int64("spent_total", a.SpentTotal),
		)
	}
	return n
}
