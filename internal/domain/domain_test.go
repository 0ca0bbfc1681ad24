package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositStatus_Transition(t *testing.T) {
	tests := []struct {
		name      string
		from      DepositStatus
		to        DepositStatus
		expectErr bool
	}{
		{name: "pending to approved", from: DepositPending, to: DepositApproved},
		{name: "pending to rejected", from: DepositPending, to: DepositRejected},
		{name: "pending to pending", from: DepositPending, to: DepositPending, expectErr: true},
		{name: "approved to rejected", from: DepositApproved, to: DepositRejected, expectErr: true},
		{name: "rejected to approved", from: DepositRejected, to: DepositApproved, expectErr: true},
		{name: "approved to pending", from: DepositApproved, to: DepositPending, expectErr: true},
		{name: "rejected to pending", from: DepositRejected, to: DepositPending, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.from.Transition(tt.to)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, next)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, next)
			}
		})
	}
}

func TestDepositStatus_Terminal(t *testing.T) {
	assert.False(t, DepositPending.Terminal())
	assert.True(t, DepositApproved.Terminal())
	assert.True(t, DepositRejected.Terminal())
}

func TestParseDepositStatus(t *testing.T) {
	st, err := ParseDepositStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, DepositApproved, st)

	_, err = ParseDepositStatus("refunded")
	assert.Error(t, err)
}

func TestStorageFailure(t *testing.T) {
	dbErr := errors.New("connection reset")

	wrapped := StorageFailure(dbErr)
	assert.ErrorIs(t, wrapped, ErrStorageFailure)
	assert.ErrorIs(t, wrapped, dbErr)

	assert.Equal(t, wrapped, StorageFailure(wrapped))
	assert.Nil(t, StorageFailure(nil))

	domainErr := fmt.Errorf("place order: %w", ErrInsufficientFunds)
	assert.Equal(t, domainErr, StorageFailure(domainErr))
	assert.False(t, errors.Is(StorageFailure(domainErr), ErrStorageFailure))
}

func TestNotFoundKinds(t *testing.T) {
	assert.ErrorIs(t, ErrServiceNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrDepositNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrOrderNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrServiceNotFound, ErrDepositNotFound)
}

func TestAccountAudit_Consistent(t *testing.T) {
	assert.True(t, AccountAudit{Balance: 20, DepositedTotal: 50, SpentTotal: 30}.Consistent())
	assert.False(t, AccountAudit{Balance: 25, DepositedTotal: 50, SpentTotal: 30}.Consistent())
	assert.False(t, AccountAudit{Balance: -10, DepositedTotal: 0, SpentTotal: 10}.Consistent())
}
