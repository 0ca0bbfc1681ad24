package domain

import "time"

type Account struct {
	UserID    int64     `db:"user_id"`
	Handle    string    `db:"handle"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
}

type Service struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Price   int64  `db:"price"`
	Enabled bool   `db:"enabled"`
}

// Order is an append-only record of a completed purchase. Price is the amount
// actually debited, independent of later catalog changes.
type Order struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	ServiceID string    `db:"service_id"`
	Price     int64     `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}

type Deposit struct {
	ID        string        `db:"id"`
	UserID    int64         `db:"user_id"`
	Amount    int64         `db:"amount"`
	Status    DepositStatus `db:"status"`
	CreatedAt time.Time     `db:"created_at"`
}

// Actor is a caller whose identity and admin capability were already
// established by the transport layer.
type Actor struct {
	UserID int64
	Admin  bool
}

// AccountAudit holds the figures the ledger audit compares for one account.
type AccountAudit struct {
	UserID         int64 `db:"user_id"`
	Balance        int64 `db:"balance"`
	DepositedTotal int64 `db:"deposited_total"`
	SpentTotal     int64 `db:"spent_total"`
}

func (a AccountAudit) Expected() int64 {
	return a.DepositedTotal - a.SpentTotal
}

func (a AccountAudit) Consistent() bool {
	return a.Balance >= 0 && a.Balance == a.Expected()
}
