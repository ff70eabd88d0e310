package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/mysql"
)

// sqlAccount 對應資料庫的 accounts 表
// 時間欄位刻意不叫 UpdatedAt，避免 GORM 自動覆寫成目前時間
type sqlAccount struct {
	AccountNumber string          `gorm:"primaryKey;size:64"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Version       int64           `gorm:"not null"`
	StampedAt     int64           `gorm:"not null"` // 毫秒
	Description   string          `gorm:"size:255"`  // 最後一次異動的說明
}

func (*sqlAccount) TableName() string {
	return "accounts"
}

// sqlTransaction 對應資料庫的 transactions 表
type sqlTransaction struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	RefID         []byte          `gorm:"column:ref_id;type:binary(16);uniqueIndex"` // 對應 domain.Transaction.ID
	AccountNumber string          `gorm:"size:64;not null;index:idx_account_occurred,priority:1"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Description   string          `gorm:"size:255"`
	OccurredAt    int64           `gorm:"not null;index:idx_account_occurred,priority:2"` // 毫秒
}

func (*sqlTransaction) TableName() string {
	return "transactions"
}

// Store 是使用 GORM + MySQL 的 Store
type Store struct {
	db *gorm.DB
	// lockRows 為 true 時，讀取帳戶會加上 SELECT ... FOR UPDATE (只在 Transaction 內使用)
	lockRows bool
}

func NewStore(client *mysql.Client) *Store {
	return &Store{
		db: client.DB(),
	}
}

// AutoMigrate 建立或更新資料表
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&sqlAccount{}, &sqlTransaction{})
}

// Save 儲存帳戶快照
// 版本 1 代表開戶 (INSERT)，其餘以 version = 前一版 當條件 UPDATE
func (s *Store) Save(ctx context.Context, account *domain.Account, timestamp time.Time) error {
	db := s.db.WithContext(ctx)
	if account.Version == 1 {
		err := db.Create(&sqlAccount{
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance,
			Version:       account.Version,
			StampedAt:     timestamp.UnixMilli(),
			Description:   account.Description,
		}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrVersionConflict
		}
		return err
	}

	result := db.Model(&sqlAccount{}).
		Where("account_number = ? AND version = ?", account.AccountNumber, account.Version-1).
		Updates(map[string]any{
			"balance":     account.Balance,
			"version":     account.Version,
			"stamped_at":  timestamp.UnixMilli(),
			"description": account.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// SaveTransaction 新增交易紀錄
func (s *Store) SaveTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, timestamp time.Time) error {
	tran := domain.NewTransaction(accountNumber, amount, description, timestamp)
	return s.db.WithContext(ctx).Create(&sqlTransaction{
		RefID:         tran.ID[:],
		AccountNumber: tran.AccountNumber,
		Amount:        tran.Amount,
		Description:   tran.Description,
		OccurredAt:    tran.Timestamp.UnixMilli(),
	}).Error
}

// GetAccountByAccountNumber 取得帳戶快照
func (s *Store) GetAccountByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var row sqlAccount
	err := accountQuery(s.db.WithContext(ctx), accountNumber, s.lockRows).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return toDomainAccount(row), nil
}

// GetListTransactionOccurred 取得帳戶所有交易紀錄
func (s *Store) GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.findTransactions(historyQuery(s.db.WithContext(ctx), accountNumber, nil, nil))
}

// GetListTransactionOccurredBetween 取得 [start, stop] 區間內的交易紀錄
func (s *Store) GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error) {
	return s.findTransactions(historyQuery(s.db.WithContext(ctx), accountNumber, &start, &stop))
}

// WithinTransaction 在同一個資料庫交易內執行 fn，帳戶讀取會鎖定該列 (悲觀鎖)
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store usecase.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx, lockRows: true})
	})
}

func (s *Store) findTransactions(query *gorm.DB) ([]domain.Transaction, error) {
	var rows []sqlTransaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		tran, err := toDomainTransaction(row)
		if err != nil {
			return nil, err
		}
		out = append(out, tran)
	}
	return out, nil
}

func accountQuery(db *gorm.DB, accountNumber string, lock bool) *gorm.DB {
	query := db.Model(&sqlAccount{}).Where("account_number = ?", accountNumber)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return query
}

// historyQuery start/stop 為 nil 時不加時間條件；BETWEEN 含頭尾
func historyQuery(db *gorm.DB, accountNumber string, start, stop *time.Time) *gorm.DB {
	query := db.Model(&sqlTransaction{}).Where("account_number = ?", accountNumber)
	if start != nil && stop != nil {
		query = query.Where("occurred_at BETWEEN ? AND ?", start.UnixMilli(), stop.UnixMilli())
	}
	return query.Order("occurred_at ASC, id ASC")
}

func toDomainAccount(row sqlAccount) *domain.Account {
	return &domain.Account{
		AccountNumber: row.AccountNumber,
		Balance:       row.Balance,
		Version:       row.Version,
		Description:   row.Description,
	}
}

func toDomainTransaction(row sqlTransaction) (domain.Transaction, error) {
	id, err := uuid.FromBytes(row.RefID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid ref_id for transaction %d: %w", row.ID, err)
	}
	return domain.Transaction{
		ID:            id,
		AccountNumber: row.AccountNumber,
		Amount:        row.Amount,
		Description:   row.Description,
		Timestamp:     time.UnixMilli(row.OccurredAt).UTC(),
	}, nil
}

var (
	_ usecase.Store      = (*Store)(nil)
	_ usecase.Transactor = (*Store)(nil)
)
