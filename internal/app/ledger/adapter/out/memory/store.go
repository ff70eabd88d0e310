package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/wal"
)

// accountRecord 帳戶快照以及最後寫入的時間戳
type accountRecord struct {
	Account   domain.Account `json:"account"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// walRecord WAL 中的一行，一次 commit 只寫一行，重放時整批套用
type walRecord struct {
	Accounts     []accountRecord      `json:"accounts,omitempty"`
	Transactions []domain.Transaction `json:"transactions,omitempty"`
}

// Store 是一個使用 RWMutex 保護的記憶體 Store
//
// 結構:
//
//	accounts: 帳號 -> 帳戶快照
//	transactions: 帳號 -> 交易紀錄 (append-only)
//	mu: RWMutex 用於保護上面兩個 Map
//	wal: Write-Ahead Log 實例，nil 代表不落地
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*accountRecord
	transactions map[string][]domain.Transaction
	wal          *wal.WAL
}

// NewStore 建立一個新的記憶體 Store，並從 WAL 恢復資料
//
// 參數:
//
//	w: Write-Ahead Log 實例 (可為 nil)
//
// 回傳:
//
//	*Store: Store 實例
//	error: 初始化錯誤 (如 WAL 恢復失敗)
func NewStore(w *wal.WAL) (*Store, error) {
	store := &Store{
		accounts:     make(map[string]*accountRecord),
		transactions: make(map[string][]domain.Transaction),
		wal:          w,
	}
	if err := store.recoverFromWAL(); err != nil {
		return nil, err
	}
	return store, nil
}

// recoverFromWAL 從 WAL 檔案恢復狀態
// 只有 NewStore 呼叫，無需 Lock (單執行緒)
func (s *Store) recoverFromWAL() error {
	if s.wal == nil {
		return nil
	}
	return s.wal.ReadAll(func(jsonRaw []byte) error {
		var record walRecord
		if err := json.Unmarshal(jsonRaw, &record); err != nil {
			return fmt.Errorf("decode wal record: %w", err)
		}
		s.applyRecord(record)
		return nil
	})
}

// Len 回傳帳戶數量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Save 儲存帳戶快照 (單筆 commit)
func (s *Store) Save(ctx context.Context, account *domain.Account, timestamp time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkVersion(s.accounts[account.AccountNumber], account); err != nil {
		return err
	}
	return s.commit(walRecord{
		Accounts: []accountRecord{{Account: *account, UpdatedAt: timestamp}},
	})
}

// SaveTransaction 新增交易紀錄 (單筆 commit)
func (s *Store) SaveTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, timestamp time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(walRecord{
		Transactions: []domain.Transaction{domain.NewTransaction(accountNumber, amount, description, timestamp)},
	})
}

// GetAccountByAccountNumber 取得帳戶快照 (回傳副本)
func (s *Store) GetAccountByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookupAccount(s.accounts[accountNumber])
}

// GetListTransactionOccurred 取得帳戶所有交易紀錄
func (s *Store) GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTransactions(s.transactions[accountNumber], nil), nil
}

// GetListTransactionOccurredBetween 取得 [start, stop] 區間內的交易紀錄
func (s *Store) GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterTransactions(s.transactions[accountNumber], func(tran domain.Transaction) bool {
		return tran.OccurredBetween(start, stop)
	}), nil
}

// WithinTransaction 在寫鎖內執行 fn
// fn 的寫入先暫存，成功後才以一行 WAL 紀錄一次 commit
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store usecase.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{
		parent:   s,
		accounts: make(map[string]*accountRecord),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.accounts) == 0 && len(tx.transactions) == 0 {
		return nil
	}

	record := walRecord{Transactions: tx.transactions}
	for _, number := range tx.order {
		record.Accounts = append(record.Accounts, *tx.accounts[number])
	}
	return s.commit(record)
}

// commit 寫入 WAL 後更新記憶體，呼叫端需持有寫鎖
func (s *Store) commit(record walRecord) error {
	// 1. 寫入 WAL (Critical Path)
	if s.wal != nil {
		if err := s.wal.Write(record); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrWALWriteFailed, err)
		}
	}
	// 2. 更新記憶體
	s.applyRecord(record)
	return nil
}

func (s *Store) applyRecord(record walRecord) {
	for i := range record.Accounts {
		rec := record.Accounts[i]
		s.accounts[rec.Account.AccountNumber] = &rec
	}
	for _, tran := range record.Transactions {
		s.transactions[tran.AccountNumber] = append(s.transactions[tran.AccountNumber], tran)
	}
}

// checkVersion 樂觀鎖檢查：版本 1 代表開戶，其餘必須是既有版本 +1
func checkVersion(existing *accountRecord, account *domain.Account) error {
	if existing == nil {
		if account.Version != 1 {
			return domain.ErrVersionConflict
		}
		return nil
	}
	if existing.Account.Version+1 != account.Version {
		return domain.ErrVersionConflict
	}
	return nil
}

func lookupAccount(rec *accountRecord) (*domain.Account, error) {
	if rec == nil {
		return nil, domain.ErrAccountNotFound
	}
	account := rec.Account
	return &account, nil
}

// filterTransactions 複製並依時間排序，keep 為 nil 代表全部保留
func filterTransactions(history []domain.Transaction, keep func(domain.Transaction) bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(history))
	for _, tran := range history {
		if keep == nil || keep(tran) {
			out = append(out, tran)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Transaction) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

var (
	_ usecase.Store      = (*Store)(nil)
	_ usecase.Transactor = (*Store)(nil)
)
