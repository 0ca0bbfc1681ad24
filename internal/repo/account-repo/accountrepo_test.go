package accountrepo

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

const (
	ensureQuery  = `INSERT INTO users (user_id, handle, balance, created_at) VALUES ($1, NULLIF($2, ''), 0, $3) ON CONFLICT (user_id) DO NOTHING`
	findQuery    = `SELECT user_id, COALESCE(handle, ''), balance, created_at FROM users WHERE user_id = $1`
	balanceQuery = `SELECT balance FROM users WHERE user_id = $1`
	creditQuery  = `ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance RETURNING balance`
	debitQuery   = `UPDATE users SET balance = balance - $1 WHERE user_id = $2 AND balance >= $1 RETURNING balance`
	auditQuery   = `FROM users u WHERE u.user_id > $1 ORDER BY u.user_id LIMIT $2`
)

func TestRepository_Ensure(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		created   bool
		expectErr bool
	}{
		{
			name: "New account is created",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WithArgs(int64(42), "alice", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			created: true,
		},
		{
			name: "Existing account is left untouched",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WithArgs(int64(42), "alice", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			created: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(ensureQuery)).
					WithArgs(int64(42), "alice", pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			created, err := repo.Ensure(context.Background(), 42, "alice")
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrStorageFailure)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.created, created)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name: "Account exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"user_id", "handle", "balance", "created_at"}).
					AddRow(int64(42), "alice", int64(15000), now)
				mock.ExpectQuery(regexp.QuoteMeta(findQuery)).WithArgs(int64(42)).WillReturnRows(rows)
			},
			result: &domain.Account{UserID: 42, Handle: "alice", Balance: 15000, CreatedAt: now},
		},
		{
			name: "Unknown account",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(findQuery)).WithArgs(int64(42)).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(findQuery)).WithArgs(int64(42)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 42)
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrStorageFailure)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_GetBalance(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		balance   int64
	}{
		{
			name: "Known account",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(50000)))
			},
			balance: 50000,
		},
		{
			name: "Unknown account reads zero",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(int64(7)).WillReturnError(pgx.ErrNoRows)
			},
			balance: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(balanceQuery)).WithArgs(int64(7)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.GetBalance(context.Background(), 7)
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrStorageFailure)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.balance, balance)
		})
	}
}

func TestRepository_Credit(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name        string
		amount      int64
		mockSetup   func()
		expectedErr error
		balance     int64
	}{
		{
			name:   "Credit increases balance",
			amount: 50000,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(creditQuery)).
					WithArgs(int64(7), int64(50000), pgxmock.AnyArg()).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(65000)))
			},
			balance: 65000,
		},
		{
			name:        "Zero amount",
			amount:      0,
			mockSetup:   func() {},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "Negative amount",
			amount:      -100,
			mockSetup:   func() {},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:   "Database error",
			amount: 100,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(creditQuery)).
					WithArgs(int64(7), int64(100), pgxmock.AnyArg()).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: domain.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.Credit(context.Background(), 7, tt.amount)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.balance, balance)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Debit(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name        string
		amount      int64
		mockSetup   func()
		expectedErr error
		balance     int64
	}{
		{
			name:   "Sufficient funds",
			amount: 15000,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(debitQuery)).
					WithArgs(int64(15000), int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(0)))
			},
			balance: 0,
		},
		{
			name:   "Insufficient funds",
			amount: 15000,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(debitQuery)).
					WithArgs(int64(15000), int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:        "Invalid amount",
			amount:      0,
			mockSetup:   func() {},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:   "Database error",
			amount: 15000,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(debitQuery)).
					WithArgs(int64(15000), int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: domain.ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			balance, err := repo.Debit(context.Background(), 7, tt.amount)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.balance, balance)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Audit(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"user_id", "balance", "deposited_total", "spent_total"}).
		AddRow(int64(1), int64(35000), int64(50000), int64(15000)).
		AddRow(int64(2), int64(0), int64(0), int64(0))
	mock.ExpectQuery(regexp.QuoteMeta(auditQuery)).WithArgs(int64(0), 100).WillReturnRows(rows)

	audits, err := repo.Audit(context.Background(), 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, []domain.AccountAudit{
		{UserID: 1, Balance: 35000, DepositedTotal: 50000, SpentTotal: 15000},
		{UserID: 2},
	}, audits)

	mock.ExpectQuery(regexp.QuoteMeta(auditQuery)).WithArgs(int64(2), 100).WillReturnError(errors.New("database error"))
	_, err = repo.Audit(context.Background(), 2, 100)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
}
