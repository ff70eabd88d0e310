package mysql

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunDB 建立不連線的 GORM 實例，只用來檢查產生的 SQL
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysqldriver.New(mysqldriver.Config{
		DSN:                       "ledger:secret@tcp(127.0.0.1:3306)/bank",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestAccountQueryLocksRowInsideTransaction(t *testing.T) {
	db := newDryRunDB(t)

	plain := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row sqlAccount
		return accountQuery(tx, "0123456789", false).First(&row)
	})
	assert.Contains(t, plain, "`accounts`")
	assert.Contains(t, plain, "account_number = '0123456789'")
	assert.NotContains(t, plain, "FOR UPDATE")

	locked := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row sqlAccount
		return accountQuery(tx, "0123456789", true).First(&row)
	})
	assert.Contains(t, locked, "FOR UPDATE")
}

func TestHistoryQueryUsesInclusiveMillisecondBounds(t *testing.T) {
	db := newDryRunDB(t)
	start := time.UnixMilli(1_700_000_000_000)
	stop := start.Add(5 * time.Second)

	ranged := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []sqlTransaction
		return historyQuery(tx, "0123456789", &start, &stop).Find(&rows)
	})
	assert.Contains(t, ranged, "`transactions`")
	assert.Contains(t, ranged, "occurred_at BETWEEN 1700000000000 AND 1700000005000")
	assert.Contains(t, ranged, "ORDER BY occurred_at ASC, id ASC")

	all := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []sqlTransaction
		return historyQuery(tx, "0123456789", nil, nil).Find(&rows)
	})
	assert.NotContains(t, all, "BETWEEN")
}

func TestRowConversion(t *testing.T) {
	account := toDomainAccount(sqlAccount{AccountNumber: "a", Balance: decimal.RequireFromString("12.3400"), Version: 4})
	assert.Equal(t, "a", account.AccountNumber)
	assert.Equal(t, "12.34", account.Balance.StringFixed(2))
	assert.Equal(t, int64(4), account.Version)

	id := uuid.New()
	tran, err := toDomainTransaction(sqlTransaction{
		ID:            7,
		RefID:         id[:],
		AccountNumber: "a",
		Amount:        decimal.NewFromInt(-100),
		Description:   "Y",
		OccurredAt:    1_700_000_000_123,
	})
	require.NoError(t, err)
	assert.Equal(t, id, tran.ID)
	assert.True(t, tran.Amount.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, time.UnixMilli(1_700_000_000_123).UTC(), tran.Timestamp)

	_, err = toDomainTransaction(sqlTransaction{RefID: []byte{1, 2, 3}})
	assert.Error(t, err)
}
