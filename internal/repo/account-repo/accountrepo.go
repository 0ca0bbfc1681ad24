package accountrepo

import (
	"context"
	"errors"
	"time"

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

// Ensure creates the account if it does not exist yet. An existing account is
// left untouched. The returned flag reports whether a row was inserted.
func (r *Repository) Ensure(ctx context.Context, userID int64, handle string) (bool, error) {
	query := `
		INSERT INTO users (user_id, handle, balance, created_at)
		VALUES ($1, NULLIF($2, ''), 0, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, userID, handle, time.Now().UTC())
	if err != nil {
		zap.L().Error("can't ensure account", zap.Int64("user_id", userID), zap.Error(err))
		return false, domain.StorageFailure(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	query := `
		SELECT user_id, COALESCE(handle, ''), balance, created_at
		FROM users
		WHERE user_id = $1
	`
	var account domain.Account
	err := r.db.QueryRow(ctx, query, userID).Scan(&account.UserID, &account.Handle, &account.Balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Int64("user_id", userID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	return &account, nil
}

// GetBalance is read-only: an unknown user has a zero balance and no row is created.
func (r *Repository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM users WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		zap.L().Error("can't get balance", zap.Int64("user_id", userID), zap.Error(err))
		return 0, domain.StorageFailure(err)
	}
	return balance, nil
}

// Credit adds amount to the balance in a single statement. A credit for a user
// without an account row creates it.
func (r *Repository) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	query := `
		INSERT INTO users (user_id, balance, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance
		RETURNING balance
	`
	var balance int64
	err := r.db.QueryRow(ctx, query, userID, amount, time.Now().UTC()).Scan(&balance)
	if err != nil {
		zap.L().Error("can't credit account", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Error(err))
		return 0, domain.StorageFailure(err)
	}
	return balance, nil
}

// Debit subtracts amount only if the balance covers it. Check and decrement
// are one conditional UPDATE, so concurrent debits cannot both pass the check.
func (r *Repository) Debit(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	query := `
		UPDATE users
		SET balance = balance - $1
		WHERE user_id = $2 AND balance >= $1
		RETURNING balance
	`
	var balance int64
	err := r.db.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		zap.L().Error("can't debit account", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Error(err))
		return 0, domain.StorageFailure(err)
	}
	return balance, nil
}

// Audit returns ledger figures for up to limit accounts with user_id > afterUserID.
func (r *Repository) Audit(ctx context.Context, afterUserID int64, limit int) ([]domain.AccountAudit, error) {
	query := `
		SELECT u.user_id, u.balance,
			COALESCE((SELECT SUM(d.amount) FROM deposits d WHERE d.user_id = u.user_id AND d.status = 'approved'), 0)::BIGINT,
			COALESCE((SELECT SUM(o.price) FROM orders o WHERE o.user_id = u.user_id), 0)::BIGINT
		FROM users u
		WHERE u.user_id > $1
		ORDER BY u.user_id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, afterUserID, limit)
	if err != nil {
		zap.L().Error("can't load audit figures", zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	defer rows.Close()

	var audits []domain.AccountAudit
	for rows.Next() {
		var a domain.AccountAudit
		if err := rows.Scan(&a.UserID, &a.Balance, &a.DepositedTotal, &a.SpentTotal); err != nil {
			zap.L().Error("can't scan audit row", zap.Error(err))
			return nil, domain.StorageFailure(err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure(err)
	}
	return audits, nil
}
