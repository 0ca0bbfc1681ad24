package orderservice

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
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
}

type Catalog interface {
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
}

type Accounts interface {
	Debit(ctx context.Context, userID int64, amount int64) (int64, error)
}

type Service struct {
	repo      Repo
	catalog   Catalog
	accounts  Accounts
	txManager pg.TXManager

	newID func() string
	now   func() time.Time
}

func New(repo Repo, catalog Catalog, accounts Accounts, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		accounts:  accounts,
		txManager: txManager,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PlaceOrder charges the user the catalog price read once at the start and
// records the order. Debit and insert run in one transaction: either both
// happen or neither does. It returns the order and the balance after the debit.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, serviceID string) (order *domain.Order, balance int64, err error) {
	defer func(start time.Time) { metrics.ObserveLedgerOp("place_order", start, err) }(time.Now())

	service, err := s.catalog.Get(ctx, serviceID)
	if err != nil {
		return nil, 0, err
	}

	order = &domain.Order{
		ID:        s.newID(),
		UserID:    userID,
		ServiceID: service.ID,
		Price:     service.Price,
		CreatedAt: s.now(),
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.accounts.Debit(ctx, userID, order.Price)
		if err != nil {
			return err
		}
		return s.repo.Create(ctx, order)
	})
	if err != nil {
		if !domain.IsDomainError(err) {
			zap.L().Error("can't place order", zap.Int64("user_id", userID), zap.String("service_id", serviceID), zap.Error(err))
		}
		return nil, 0, domain.StorageFailure(err)
	}

	zap.L().Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.String("service_id", serviceID),
		zap.Int64("price", order.Price),
	)
	return order, balance, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// GetOrder returns one of the user's orders. Orders of other users are
// reported as ErrOrderNotFound.
func (s *Service) GetOrder(ctx context.Context, userID int64, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
