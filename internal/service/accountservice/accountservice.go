package accountservice

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/pkg/metrics"
)

type Repo interface {
	Ensure(ctx context.Context, userID int64, handle string) (bool, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Account, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	Credit(ctx context.Context, userID int64, amount int64) (int64, error)
	Debit(ctx context.Context, userID int64, amount int64) (int64, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// EnsureAccount registers the user on first contact. Repeated calls are no-ops.
func (s *Service) EnsureAccount(ctx context.Context, userID int64, handle string) (*domain.Account, error) {
	created, err := s.repo.Ensure(ctx, userID, handle)
	if err != nil {
		return nil, err
	}
	if created {
		zap.L().Info("account created", zap.Int64("user_id", userID), zap.String("handle", handle))
	}
	account, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return &domain.Account{UserID: userID, Handle: handle}, nil
	}
	return account, nil
}

// GetAccount never creates a row; an unknown user is reported with a zero balance.
func (s *Service) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if account == nil {
		return &domain.Account{UserID: userID}, nil
	}
	return account, nil
}

func (s *Service) GetBalance(ctx context.Context, userID int64) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (s *Service) Credit(ctx context.Context, userID int64, amount int64) (balance int64, err error) {
	defer func(start time.Time) { metrics.ObserveLedgerOp("credit", start, err) }(time.Now())

	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	balance, err = s.repo.Credit(ctx, userID, amount)
	if err != nil {
		zap.L().Error("failed to credit account", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	zap.L().Info("account credited", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Int64("balance", balance))
	return balance, nil
}

func (s *Service) Debit(ctx context.Context, userID int64, amount int64) (balance int64, err error) {
	defer func(start time.Time) { metrics.ObserveLedgerOp("debit", start, err) }(time.Now())

	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	balance, err = s.repo.Debit(ctx, userID, amount)
	if err != nil {
		if !domain.IsDomainError(err) {
			zap.L().Error("failed to debit account", zap.Int64("user_id", userID), zap.Error(err))
		}
		return 0, err
	}
	zap.L().Info("account debited", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Int64("balance", balance))
	return balance, nil
}
