package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountHasZeroBalance(t *testing.T) {
	account := NewAccount("1234567890")
	assert.Equal(t, "1234567890", account.AccountNumber)
	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, int64(1), account.Version)
	assert.Empty(t, account.Description)
}

func TestAccountDeposit(t *testing.T) {
	account := NewAccount("0123456789")

	updated, err := account.Deposit(decimal.NewFromInt(200), "X")
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "X", updated.Description)
	// 原本的快照不應被修改
	assert.True(t, account.Balance.IsZero())

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := account.Deposit(amount, "X")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestAccountWithdraw(t *testing.T) {
	account := &Account{AccountNumber: "0123456789", Balance: decimal.NewFromInt(200), Version: 3}

	updated, err := account.Withdraw(decimal.NewFromInt(100), "Y")
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(4), updated.Version)
	assert.Equal(t, "Y", updated.Description)

	_, err = account.Withdraw(decimal.NewFromInt(201), "Y")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = account.Withdraw(decimal.NewFromInt(-1), "Y")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// 剛好提領全部餘額是允許的
	emptied, err := account.Withdraw(decimal.NewFromInt(200), "Y")
	require.NoError(t, err)
	assert.True(t, emptied.Balance.IsZero())
}

func TestTransactionOccurredBetween(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000).UTC()
	stop := start.Add(time.Hour)
	tran := NewTransaction("0123456789", decimal.NewFromInt(1), "x", start)

	assert.NotEqual(t, [16]byte{}, [16]byte(tran.ID))
	assert.True(t, tran.OccurredBetween(start, stop))

	tran.Timestamp = stop
	assert.True(t, tran.OccurredBetween(start, stop))

	tran.Timestamp = stop.Add(time.Millisecond)
	assert.False(t, tran.OccurredBetween(start, stop))

	tran.Timestamp = start.Add(-time.Millisecond)
	assert.False(t, tran.OccurredBetween(start, stop))
}

func TestReplayMatchesBalance(t *testing.T) {
	now := time.Now()
	history := []Transaction{
		NewTransaction("a", decimal.RequireFromString("200.00"), "deposit", now),
		NewTransaction("a", decimal.RequireFromString("-100.25"), "withdraw", now),
		NewTransaction("a", decimal.RequireFromString("0.10"), "deposit", now),
	}
	assert.Equal(t, "99.85", Replay(history).StringFixed(2))
}
