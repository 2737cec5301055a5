package repository_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/finledger/infra/repository"
	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*repository.GormStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return repository.NewGormStore(db, slog.Default()), mock
}

var ledgerColumns = []string{"owner", "data", "version", "created_at", "updated_at"}

func TestGormStore_GetMissingRow(t *testing.T) {
	require := require.New(t)
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_records" WHERE owner = \$1`).
		WillReturnRows(sqlmock.NewRows(ledgerColumns))

	rec, err := store.Get(context.Background(), "alice")
	require.NoError(err)
	assert.Empty(t, rec.Transactions)
	require.NoError(mock.ExpectationsWereMet())
}

func TestGormStore_GetQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_records"`).
		WillReturnError(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGormStore_UpdateBeginFails(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errors.New("begin failed"))

	called := false
	err := store.Update(context.Background(), "alice", func(*ledger.Record) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestGormStore_UpdateRollsBackOnMutationError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "ledger_records" WHERE owner = \$1 (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(ledgerColumns))
	mock.ExpectRollback()

	err := store.Update(context.Background(), "alice", func(*ledger.Record) error {
		return domain.Validationf("nope")
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpdateVersionConflict(t *testing.T) {
	store, mock := newMockStore(t)

	data, err := ledger.Encode(ledger.NewRecord())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "ledger_records" WHERE owner = \$1 (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(ledgerColumns).AddRow("alice", data, 3, at, at))
	mock.ExpectExec(`UPDATE "ledger_records" SET (.+) WHERE owner = (.+) AND version = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = store.Update(context.Background(), "alice", func(*ledger.Record) error { return nil })
	require.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "duplicate key maps to conflict", input: gorm.ErrDuplicatedKey, expected: domain.ErrConflict},
		{name: "record not found maps to not found", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "wrapped duplicate key", input: errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), expected: domain.ErrConflict},
		{name: "domain errors pass through", input: domain.ErrValidation, expected: domain.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, repository.MapGormErrorToDomain(tc.input), tc.expected)
		})
	}
	assert.NoError(t, repository.MapGormErrorToDomain(nil))
}
