package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgres(mock, "http://shop.test"), mock
}

func TestPostgresGet(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM local_storage`)).
		WithArgs("http://shop.test", "cart").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[]`))

	v, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM local_storage`)).
		WithArgs("http://shop.test", "cart").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), "cart")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM local_storage`)).
		WithArgs("http://shop.test", "cart").
		WillReturnError(errors.New("connection reset"))

	_, err := store.Get(context.Background(), "cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresSetUpserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO local_storage`)).
		WithArgs("http://shop.test", "cart", `[{"id":"p1"}]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Set(context.Background(), "cart", `[{"id":"p1"}]`))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRemove(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM local_storage`)).
		WithArgs("http://shop.test", "cart").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Remove(context.Background(), "cart"))
	require.NoError(t, mock.ExpectationsWereMet())
}
