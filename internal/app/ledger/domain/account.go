package domain

import "github.com/shopspring/decimal"

// Account 帳戶快照
//
// 結構:
//
//	AccountNumber: 呼叫端提供的帳號 (唯一性由呼叫端保證)
//	Balance: 目前餘額
//	Version: 樂觀鎖版本號，開戶為 1，每次異動 +1
//	Description: 最後一次異動的說明，開戶時為空
type Account struct {
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	Version       int64           `json:"version"`
	Description   string          `json:"description,omitempty"`
}

// NewAccount 建立餘額為 0 的新帳戶
func NewAccount(accountNumber string) *Account {
	return &Account{
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		Version:       1,
	}
}

// Deposit 存款，回傳新的快照 (不修改原本的 Account)
func (a *Account) Deposit(amount decimal.Decimal, description string) (*Account, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Account{
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance.Add(amount),
		Version:       a.Version + 1,
		Description:   description,
	}, nil
}

// Withdraw 提款，餘額不得為負
func (a *Account) Withdraw(amount decimal.Decimal, description string) (*Account, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	return &Account{
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance.Sub(amount),
		Version:       a.Version + 1,
		Description:   description,
	}, nil
}
