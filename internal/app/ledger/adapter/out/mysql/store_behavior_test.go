package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
)

var stamp = time.UnixMilli(1_700_000_000_000).UTC()

var accountColumns = []string{"account_number", "balance", "version", "stamped_at", "description"}

// newMockStore 建立接在 sqlmock 上的 Store，設定與 pkg/mysql.NewClient 相同
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})
	return NewStore(mysql.NewClientFromDB(db)), mock
}

func TestSaveOpensAccount(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO `accounts`").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Save(context.Background(), domain.NewAccount("0123456789"), stamp))
}

func TestSaveReopenIsVersionConflict(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO `accounts`").
		WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "Duplicate entry '0123456789' for key 'PRIMARY'"})

	err := store.Save(context.Background(), domain.NewAccount("0123456789"), stamp)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestSaveStaleVersionIsConflict(t *testing.T) {
	store, mock := newMockStore(t)
	account := &domain.Account{AccountNumber: "0123456789", Balance: decimal.NewFromInt(200), Version: 2, Description: "X"}

	mock.ExpectExec("UPDATE `accounts` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Save(context.Background(), account, stamp))

	// 另一個寫入者已經把版本往前推
	mock.ExpectExec("UPDATE `accounts` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, store.Save(context.Background(), account, stamp), domain.ErrVersionConflict)
}

func TestSaveKeepsDriverErrors(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO `accounts`").WillReturnError(boom)

	err := store.Save(context.Background(), domain.NewAccount("a"), stamp)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrVersionConflict)
}

func TestGetAccount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `accounts`").
		WillReturnRows(sqlmock.NewRows(accountColumns))
	_, err := store.GetAccountByAccountNumber(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	mock.ExpectQuery("SELECT \\* FROM `accounts`").
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow("0123456789", "200.0000", int64(2), stamp.UnixMilli(), "X"))
	account, err := store.GetAccountByAccountNumber(context.Background(), "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "200", account.Balance.String())
	assert.Equal(t, int64(2), account.Version)
	assert.Equal(t, "X", account.Description)
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx usecase.Store) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWithinTransactionLocksAndCommits(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `accounts` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(accountColumns).AddRow("a", "10", int64(1), stamp.UnixMilli(), ""))
	mock.ExpectCommit()

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, tx usecase.Store) error {
		account, err := tx.GetAccountByAccountNumber(ctx, "a")
		if err != nil {
			return err
		}
		assert.Equal(t, "10", account.Balance.String())
		return nil
	})
	require.NoError(t, err)
}
