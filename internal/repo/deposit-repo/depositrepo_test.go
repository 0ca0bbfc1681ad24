package depositrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/digishop/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

var depositColumns = []string{"id", "user_id", "amount", "status", "created_at"}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	deposit := &domain.Deposit{ID: "d1", UserID: 7, Status: domain.DepositPending, CreatedAt: now}
	query := regexp.QuoteMeta(`INSERT INTO deposits (id, user_id, amount, status, created_at) VALUES ($1, $2, $3, $4, $5)`)

	mock.ExpectExec(query).
		WithArgs("d1", int64(7), int64(0), "pending", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.Create(context.Background(), deposit))

	mock.ExpectExec(query).
		WithArgs("d1", int64(7), int64(0), "pending", now).
		WillReturnError(errors.New("database error"))
	assert.ErrorIs(t, repo.Create(context.Background(), deposit), domain.ErrStorageFailure)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(`SELECT id, user_id, amount, status, created_at FROM deposits WHERE id = $1`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Deposit
	}{
		{
			name: "Deposit exists",
			mockSetup: func() {
				rows := pgxmock.NewRows(depositColumns).AddRow("d1", int64(7), int64(50000), "approved", now)
				mock.ExpectQuery(query).WithArgs("d1").WillReturnRows(rows)
			},
			result: &domain.Deposit{ID: "d1", UserID: 7, Amount: 50000, Status: domain.DepositApproved, CreatedAt: now},
		},
		{
			name: "Deposit does not exist",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("d1").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Unknown status in storage",
			mockSetup: func() {
				rows := pgxmock.NewRows(depositColumns).AddRow("d1", int64(7), int64(0), "refunded", now)
				mock.ExpectQuery(query).WithArgs("d1").WillReturnRows(rows)
			},
			expectErr: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("d1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), "d1")
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrStorageFailure)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(`SELECT id, user_id, amount, status, created_at FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`)

	rows := pgxmock.NewRows(depositColumns).
		AddRow("d2", int64(7), int64(0), "pending", now).
		AddRow("d1", int64(7), int64(50000), "approved", now.Add(-time.Hour))
	mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnRows(rows)

	result, err := repo.FindByUserID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Deposit{
		{ID: "d2", UserID: 7, Status: domain.DepositPending, CreatedAt: now},
		{ID: "d1", UserID: 7, Amount: 50000, Status: domain.DepositApproved, CreatedAt: now.Add(-time.Hour)},
	}, result)

	mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnError(errors.New("database error"))
	_, err = repo.FindByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestRepository_CompareAndSetStatus(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(`UPDATE deposits SET status = $1, amount = CASE WHEN $2::BIGINT > 0 THEN $2::BIGINT ELSE amount END WHERE id = $3 AND status = $4`)

	tests := []struct {
		name      string
		to        domain.DepositStatus
		amount    int64
		mockSetup func()
		expectErr bool
		result    *domain.Deposit
	}{
		{
			name:   "Pending deposit approved",
			to:     domain.DepositApproved,
			amount: 50000,
			mockSetup: func() {
				rows := pgxmock.NewRows(depositColumns).AddRow("d1", int64(7), int64(50000), "approved", now)
				mock.ExpectQuery(query).WithArgs("approved", int64(50000), "d1", "pending").WillReturnRows(rows)
			},
			result: &domain.Deposit{ID: "d1", UserID: 7, Amount: 50000, Status: domain.DepositApproved, CreatedAt: now},
		},
		{
			name:   "Pending deposit rejected",
			to:     domain.DepositRejected,
			amount: 0,
			mockSetup: func() {
				rows := pgxmock.NewRows(depositColumns).AddRow("d1", int64(7), int64(0), "rejected", now)
				mock.ExpectQuery(query).WithArgs("rejected", int64(0), "d1", "pending").WillReturnRows(rows)
			},
			result: &domain.Deposit{ID: "d1", UserID: 7, Status: domain.DepositRejected, CreatedAt: now},
		},
		{
			name:   "Deposit no longer pending",
			to:     domain.DepositApproved,
			amount: 50000,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("approved", int64(50000), "d1", "pending").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			to:     domain.DepositApproved,
			amount: 50000,
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("approved", int64(50000), "d1", "pending").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.CompareAndSetStatus(context.Background(), "d1", domain.DepositPending, tt.to, tt.amount)
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrStorageFailure)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
