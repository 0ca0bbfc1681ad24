package depositrepo

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

func (r *Repository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, user_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, deposit.ID, deposit.UserID, deposit.Amount, string(deposit.Status), deposit.CreatedAt)
	if err != nil {
		zap.L().Error("can't save deposit", zap.String("deposit_id", deposit.ID), zap.Error(err))
		return domain.StorageFailure(err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, status, created_at
		FROM deposits
		WHERE id = $1
	`
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, depositID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find deposit", zap.String("deposit_id", depositID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	return deposit, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, status, created_at
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get deposits", zap.Int64("user_id", userID), zap.Error(err))
		return nil, domain.StorageFailure(err)
	}
	defer rows.Close()

	var deposits []domain.Deposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			zap.L().Error("can't scan deposit row", zap.Error(err))
			return nil, domain.StorageFailure(err)
		}
		deposits = append(deposits, *deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure(err)
	}
	return deposits, nil
}

// CompareAndSetStatus moves the deposit from one status to another in a single
// statement and records amount when it is positive. It returns nil when the
// deposit is missing or no longer in the from status; concurrent callers on
// the same id serialize on the row lock and only one of them gets a row back.
func (r *Repository) CompareAndSetStatus(ctx context.Context, depositID string, from, to domain.DepositStatus, amount int64) (*domain.Deposit, error) {
	query := `
		UPDATE deposits
		SET status = $1, amount = CASE WHEN $2::BIGINT > 0 THEN $2::BIGINT ELSE amount END
		WHERE id = $3 AND status = $4
		RETURNING id, user_id, amount, status, created_at
	`
	deposit, err := scanDeposit(r.db.QueryRow(ctx, query, string(to), amount, depositID, string(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't update deposit status",
			zap.String("deposit_id", depositID),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Error(err),
		)
		return nil, domain.StorageFailure(err)
	}
	return deposit, nil
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var (
		deposit domain.Deposit
		status  string
	)
	if err := row.Scan(&deposit.ID, &deposit.UserID, &deposit.Amount, &status, &deposit.CreatedAt); err != nil {
		return nil, err
	}
	st, err := domain.ParseDepositStatus(status)
	if err != nil {
		return nil, err
	}
	deposit.Status = st
	return &deposit, nil
}
