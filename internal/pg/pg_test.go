package pg

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_RoutesThroughContextTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	db := New(mock)
	manager := NewTXManager(mock)

	mock.ExpectExec("DELETE FROM outside").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectBeginTx(readCommitted)
	mock.ExpectExec("UPDATE inside").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	_, err = db.Exec(context.Background(), "DELETE FROM outside")
	require.NoError(t, err)

	err = manager.Begin(context.Background(), func(ctx context.Context) error {
		_, ok := txFromContext(ctx)
		assert.True(t, ok)
		_, err := db.Exec(ctx, "UPDATE inside")
		return err
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
