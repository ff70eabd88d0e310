package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
)

// txStore 是 WithinTransaction 期間使用的 Store
// parent 的寫鎖由 WithinTransaction 持有，這裡直接讀 parent 的 Map
type txStore struct {
	parent       *Store
	accounts     map[string]*accountRecord
	order        []string
	transactions []domain.Transaction
}

func (tx *txStore) current(accountNumber string) *accountRecord {
	if rec, ok := tx.accounts[accountNumber]; ok {
		return rec
	}
	return tx.parent.accounts[accountNumber]
}

func (tx *txStore) Save(ctx context.Context, account *domain.Account, timestamp time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkVersion(tx.current(account.AccountNumber), account); err != nil {
		return err
	}
	if _, ok := tx.accounts[account.AccountNumber]; !ok {
		tx.order = append(tx.order, account.AccountNumber)
	}
	tx.accounts[account.AccountNumber] = &accountRecord{Account: *account, UpdatedAt: timestamp}
	return nil
}

func (tx *txStore) SaveTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, timestamp time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.transactions = append(tx.transactions, domain.NewTransaction(accountNumber, amount, description, timestamp))
	return nil
}

func (tx *txStore) GetAccountByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return lookupAccount(tx.current(accountNumber))
}

func (tx *txStore) GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterTransactions(tx.history(accountNumber), nil), nil
}

func (tx *txStore) GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filterTransactions(tx.history(accountNumber), func(tran domain.Transaction) bool {
		return tran.OccurredBetween(start, stop)
	}), nil
}

// history 已 commit 的紀錄加上這次交易暫存的紀錄
func (tx *txStore) history(accountNumber string) []domain.Transaction {
	committed := tx.parent.transactions[accountNumber]
	out := make([]domain.Transaction, 0, len(committed)+len(tx.transactions))
	out = append(out, committed...)
	for _, tran := range tx.transactions {
		if tran.AccountNumber == accountNumber {
			out = append(out, tran)
		}
	}
	return out
}

var _ usecase.Store = (*txStore)(nil)
