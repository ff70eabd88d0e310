package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction 交易紀錄，建立後不可變
type Transaction struct {
	// ID: 由 Store 在寫入時分配，僅供追蹤
	ID uuid.UUID `json:"id"`
	// AccountNumber: 帳號
	AccountNumber string `json:"account_number"`
	// Amount: 帶正負號的金額，存款為正、提款為負
	Amount decimal.Decimal `json:"amount"`
	// Description: 交易說明
	Description string `json:"description"`
	// Timestamp: 與帳戶快照相同的時間戳 (毫秒精度)
	Timestamp time.Time `json:"timestamp"`
}

// NewTransaction 建立一筆交易紀錄並分配 ID
func NewTransaction(accountNumber string, amount decimal.Decimal, description string, ts time.Time) Transaction {
	return Transaction{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Amount:        amount,
		Description:   description,
		Timestamp:     ts,
	}
}

// OccurredBetween 判斷交易時間是否落在 [start, stop] (含頭尾)
func (t Transaction) OccurredBetween(start, stop time.Time) bool {
	return !t.Timestamp.Before(start) && !t.Timestamp.After(stop)
}

// Replay 依序套用交易金額，回傳最終餘額
// 不論 Store 如何儲存，同一串交易必須得到相同的餘額
func Replay(transactions []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tran := range transactions {
		balance = balance.Add(tran.Amount)
	}
	return balance
}
