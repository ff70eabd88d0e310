package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
)

// LedgerService 是帳務核心業務邏輯層
//
// 結構:
//
//	store: 持久化 (Driven Port)
//	clock: 時間來源，每次異動只取一次 Now()
//	locker: 依帳號序列化異動，避免 lost update
type LedgerService struct {
	store  Store
	clock  TimeSource
	logger *zap.Logger
	locker *accountLocker
}

// Option 定義 LedgerService 的配置選項函數
type Option func(*LedgerService)

// WithLogger 設定 Logger (預設不輸出)
func WithLogger(logger *zap.Logger) Option {
	return func(s *LedgerService) {
		s.logger = logger
	}
}

// NewLedgerService 建立 LedgerService
//
// 參數:
//
//	store: Store 實作 (memory / mysql / postgres)
//	clock: 時間來源
//	opts: 可選配置
func NewLedgerService(store Store, clock TimeSource, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:  store,
		clock:  clock,
		logger: zap.NewNop(),
		locker: newAccountLocker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenAccount 開戶，餘額為 0
// 回傳的是剛建立的快照，不會再向 Store 讀取一次
func (s *LedgerService) OpenAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if accountNumber == "" {
		return nil, domain.ErrEmptyAccountNumber
	}
	unlock := s.locker.Lock(accountNumber)
	defer unlock()

	account := domain.NewAccount(accountNumber)
	if err := s.store.Save(ctx, account, s.clock.Now()); err != nil {
		return nil, err
	}
	s.logger.Info("account opened", zap.String("account_number", accountNumber))
	return account, nil
}

// GetAccount 取得帳戶快照 (直接轉給 Store)
func (s *LedgerService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.store.GetAccountByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// Deposit 存款
//
// 參數:
//
//	accountNumber: 帳號
//	amount: 金額，必須 > 0
//	description: 交易說明
//
// 回傳:
//
//	error: domain.ErrInvalidAmount / domain.ErrAccountNotFound / Store 錯誤
func (s *LedgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return s.apply(ctx, accountNumber, description, func(account *domain.Account) (*domain.Account, decimal.Decimal, error) {
		updated, err := account.Deposit(amount, description)
		return updated, amount, err
	})
}

// WithDraw 提款，交易紀錄的金額為負數
//
// 回傳:
//
//	error: domain.ErrInvalidAmount / domain.ErrInsufficientFunds / domain.ErrAccountNotFound / Store 錯誤
func (s *LedgerService) WithDraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return s.apply(ctx, accountNumber, description, func(account *domain.Account) (*domain.Account, decimal.Decimal, error) {
		updated, err := account.Withdraw(amount, description)
		return updated, amount.Neg(), err
	})
}

// GetListTransactionOccurred 取得帳戶所有交易紀錄
func (s *LedgerService) GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.store.GetListTransactionOccurred(ctx, accountNumber)
}

// GetListTransactionOccurredBetween 取得 [start, stop] 區間內的交易紀錄，區間原封不動交給 Store
func (s *LedgerService) GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error) {
	return s.store.GetListTransactionOccurredBetween(ctx, accountNumber, start, stop)
}

// mutation 根據目前快照計算新快照，並回傳要記錄的帶號金額
type mutation func(account *domain.Account) (*domain.Account, decimal.Decimal, error)

// apply 鎖定帳號後執行異動
// Store 支援 Transactor 時，讀取與兩次寫入都在同一個 Store 交易內
func (s *LedgerService) apply(ctx context.Context, accountNumber, description string, mutate mutation) error {
	if accountNumber == "" {
		return domain.ErrEmptyAccountNumber
	}
	unlock := s.locker.Lock(accountNumber)
	defer unlock()

	if transactor, ok := s.store.(Transactor); ok {
		return transactor.WithinTransaction(ctx, func(ctx context.Context, store Store) error {
			return s.post(ctx, store, accountNumber, description, mutate, true)
		})
	}
	return s.post(ctx, s.store, accountNumber, description, mutate, false)
}

func (s *LedgerService) post(ctx context.Context, store Store, accountNumber, description string, mutate mutation, atomic bool) error {
	// 1. 讀取目前快照
	current, err := store.GetAccountByAccountNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrAccountNotFound
	}

	// 2. 計算新快照
	updated, signedAmount, err := mutate(current)
	if err != nil {
		return err
	}

	// 3. 兩次寫入共用同一個時間戳
	now := s.clock.Now()
	if err := store.Save(ctx, updated, now); err != nil {
		return err
	}
	if err := store.SaveTransaction(ctx, accountNumber, signedAmount, description, now); err != nil {
		if !atomic {
			s.logger.Warn("account snapshot saved but transaction append failed",
				zap.String("account_number", accountNumber),
				zap.String("amount", signedAmount.String()),
				zap.Time("timestamp", now),
				zap.Error(err),
			)
		}
		return err
	}

	s.logger.Debug("transaction posted",
		zap.String("account_number", accountNumber),
		zap.String("amount", signedAmount.String()),
		zap.String("balance", updated.Balance.String()),
	)
	return nil
}
