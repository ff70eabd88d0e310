package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
)

// Store 是帳務資料的持久化介面 (Driven Port)
type Store interface {
	// Save 儲存 (覆寫) 帳戶快照
	// 只接受版本號為既有版本 +1 的快照，版本 1 代表新開戶，否則回傳 domain.ErrVersionConflict
	Save(ctx context.Context, account *domain.Account, timestamp time.Time) error
	// SaveTransaction 新增一筆不可變的交易紀錄
	SaveTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, timestamp time.Time) error
	// GetAccountByAccountNumber 取得帳戶快照，不存在時回傳 domain.ErrAccountNotFound
	GetAccountByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	// GetListTransactionOccurred 取得帳戶所有交易紀錄 (依時間排序)
	GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
	// GetListTransactionOccurredBetween 取得 start <= t <= stop 的交易紀錄
	GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error)
}

// Transactor 由支援交易的 Store 實作
// fn 回傳 nil 才會 commit，任何錯誤都會讓 fn 內的寫入一併取消
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// TimeSource 提供目前時間
type TimeSource interface {
	Now() time.Time
}
