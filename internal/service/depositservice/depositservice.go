package depositservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/pg"
	"github.com/GlebRadaev/digishop/pkg/metrics"
)

type Repo interface {
	Create(ctx context.Context, deposit *domain.Deposit) error
	FindByID(ctx context.Context, depositID string) (*domain.Deposit, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Deposit, error)
	CompareAndSetStatus(ctx context.Context, depositID string, from, to domain.DepositStatus, amount int64) (*domain.Deposit, error)
}

type Accounts interface {
	Credit(ctx context.Context, userID int64, amount int64) (int64, error)
}

type Notifier interface {
	DepositApproved(ctx context.Context, deposit domain.Deposit, balance int64)
}

type Service struct {
	repo      Repo
	accounts  Accounts
	txManager pg.TXManager
	notifier  Notifier

	newID func() string
	now   func() time.Time
}

func New(repo Repo, accounts Accounts, txManager pg.TXManager, notifier Notifier) *Service {
	return &Service{
		repo:      repo,
		accounts:  accounts,
		txManager: txManager,
		notifier:  notifier,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateRequest(ctx context.Context, userID int64) (*domain.Deposit, error) {
	deposit := &domain.Deposit{
		ID:        s.newID(),
		UserID:    userID,
		Amount:    0,
		Status:    domain.DepositPending,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, deposit); err != nil {
		zap.L().Error("can't create deposit request", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("deposit requested", zap.String("deposit_id", deposit.ID), zap.Int64("user_id", userID))
	return deposit, nil
}

func (s *Service) GetRequest(ctx context.Context, depositID string) (*domain.Deposit, error) {
	deposit, err := s.repo.FindByID(ctx, depositID)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, domain.ErrDepositNotFound
	}
	return deposit, nil
}

func (s *Service) ListRequests(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	deposits, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get deposits", zap.Error(err))
		return nil, err
	}
	return deposits, nil
}

// Approve marks a pending deposit approved with amount and credits the owner
// in the same transaction. Only one of several concurrent approvals of the
// same deposit succeeds; the rest get ErrAlreadyProcessed, so a retry after
// an unknown outcome never credits twice.
func (s *Service) Approve(ctx context.Context, actor domain.Actor, depositID string, amount int64) (deposit *domain.Deposit, balance int64, err error) {
	defer func(start time.Time) { metrics.ObserveLedgerOp("approve_deposit", start, err) }(time.Now())

	if !actor.Admin {
		return nil, 0, domain.ErrNotAuthorized
	}
	if amount <= 0 {
		return nil, 0, domain.ErrInvalidAmount
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var applied bool
		var err error
		deposit, applied, err = s.transition(ctx, depositID, domain.DepositApproved, amount)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrAlreadyProcessed
		}
		balance, err = s.accounts.Credit(ctx, deposit.UserID, amount)
		return err
	})
	if err != nil {
		if !domain.IsDomainError(err) {
			zap.L().Error("can't approve deposit", zap.String("deposit_id", depositID), zap.Error(err))
		}
		return nil, 0, domain.StorageFailure(err)
	}

	zap.L().Info("deposit approved",
		zap.String("deposit_id", depositID),
		zap.Int64("admin_id", actor.UserID),
		zap.Int64("user_id", deposit.UserID),
		zap.Int64("amount", amount),
		zap.Int64("balance", balance),
	)
	s.notifier.DepositApproved(ctx, *deposit, balance)
	return deposit, balance, nil
}

// Reject marks a pending deposit rejected. Rejecting a deposit that is already
// approved or rejected changes nothing and returns its current state.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, depositID string) (deposit *domain.Deposit, err error) {
	defer func(start time.Time) { metrics.ObserveLedgerOp("reject_deposit", start, err) }(time.Now())

	if !actor.Admin {
		return nil, domain.ErrNotAuthorized
	}

	deposit, applied, err := s.transition(ctx, depositID, domain.DepositRejected, 0)
	if err != nil {
		return nil, domain.StorageFailure(err)
	}
	if !applied {
		zap.L().Info("deposit already processed, reject ignored",
			zap.String("deposit_id", depositID),
			zap.Stringer("status", deposit.Status),
		)
		return deposit, nil
	}

	zap.L().Info("deposit rejected", zap.String("deposit_id", depositID), zap.Int64("admin_id", actor.UserID))
	return deposit, nil
}

// transition applies pending -> to. When the deposit is no longer pending it
// returns the stored record with applied set to false; an unknown id is
// ErrDepositNotFound.
func (s *Service) transition(ctx context.Context, depositID string, to domain.DepositStatus, amount int64) (*domain.Deposit, bool, error) {
	if _, err := domain.DepositPending.Transition(to); err != nil {
		return nil, false, err
	}
	deposit, err := s.repo.CompareAndSetStatus(ctx, depositID, domain.DepositPending, to, amount)
	if err != nil {
		return nil, false, err
	}
	if deposit != nil {
		return deposit, true, nil
	}
	current, err := s.repo.FindByID(ctx, depositID)
	if err != nil {
		return nil, false, err
	}
	if current == nil {
		return nil, false, domain.ErrDepositNotFound
	}
	return current, false, nil
}
