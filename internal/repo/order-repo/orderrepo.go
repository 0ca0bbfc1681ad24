package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/digishop/internal/domain"
	"github.com/GlebRadaev/digishop/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Create appends an order. Orders are never updated or deleted afterwards.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, service_id, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.UserID, order.ServiceID, order.Price, order.CreatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.String("order_id", order.ID), zap.Error(err))
		return domain.StorageFailure(err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, service_id, price, created_at
		FROM orders
		WHERE id = $1
	`
	var order domain.Order
	err := r.db.QueryRow(ctx, query, orderID).Scan(&order.ID, &order.UserID, &order.ServiceID, &order.Price, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.String("order_id", orderID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	return &order, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `
		SELECT id, user_id, service_id, price, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get orders", zap.Int64("user_id", userID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.UserID, &order.ServiceID, &order.Price, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, domain.StorageFailure(err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure(err)
	}
	return orders, nil
}
