package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/domain"
	"github.com/JoeShih716/go-bank-ledger/internal/app/ledger/usecase"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		account_number TEXT PRIMARY KEY,
		balance        NUMERIC(20,4) NOT NULL,
		version        BIGINT NOT NULL,
		stamped_at     TIMESTAMPTZ NOT NULL,
		description    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id             UUID PRIMARY KEY,
		seq            BIGSERIAL,
		account_number TEXT NOT NULL,
		amount         NUMERIC(20,4) NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		occurred_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account_occurred ON transactions (account_number, occurred_at)`,
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// querier 由 *pgxpool.Pool 與 pgx.Tx 共同實作
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool 是 Store 需要的連線池功能，*pgxpool.Pool 即符合
type Pool interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store 是使用 pgx + squirrel 的 PostgreSQL Store
type Store struct {
	pool     Pool
	db       querier
	lockRows bool
}

func NewStore(pool Pool) *Store {
	return &Store{
		pool: pool,
		db:   pool,
	}
}

// CreateSchema 建立資料表 (可重複執行)
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Save 儲存帳戶快照，版本不符時回傳 domain.ErrVersionConflict
func (s *Store) Save(ctx context.Context, account *domain.Account, timestamp time.Time) error {
	query, args, err := saveAccount(account, timestamp).ToSql()
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// SaveTransaction 新增交易紀錄
func (s *Store) SaveTransaction(ctx context.Context, accountNumber string, amount decimal.Decimal, description string, timestamp time.Time) error {
	tran := domain.NewTransaction(accountNumber, amount, description, timestamp)
	query, args, err := insertTransaction(tran).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append transaction for %s: %w", accountNumber, err)
	}
	return nil
}

// GetAccountByAccountNumber 取得帳戶快照
func (s *Store) GetAccountByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query, args, err := selectAccount(accountNumber, s.lockRows).ToSql()
	if err != nil {
		return nil, err
	}

	var (
		number      string
		balance     string
		version     int64
		description string
	)
	if err := s.db.QueryRow(ctx, query, args...).Scan(&number, &balance, &version, &description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountNumber, err)
	}

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance for account %s: %w", accountNumber, err)
	}
	return &domain.Account{AccountNumber: number, Balance: amount, Version: version, Description: description}, nil
}

// GetListTransactionOccurred 取得帳戶所有交易紀錄
func (s *Store) GetListTransactionOccurred(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.queryTransactions(ctx, selectHistory(accountNumber, nil, nil))
}

// GetListTransactionOccurredBetween 取得 [start, stop] 區間內的交易紀錄
func (s *Store) GetListTransactionOccurredBetween(ctx context.Context, accountNumber string, start, stop time.Time) ([]domain.Transaction, error) {
	return s.queryTransactions(ctx, selectHistory(accountNumber, &start, &stop))
}

// WithinTransaction 在同一個資料庫交易內執行 fn，帳戶讀取使用 SELECT ... FOR UPDATE
// fn 回傳錯誤時 Rollback，否則 Commit
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store usecase.Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(ctx, &Store{pool: s.pool, db: tx, lockRows: true}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) queryTransactions(ctx context.Context, builder sq.SelectBuilder) ([]domain.Transaction, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			id          string
			number      string
			amount      string
			description string
			occurredAt  time.Time
		)
		if err := rows.Scan(&id, &number, &amount, &description, &occurredAt); err != nil {
			return nil, err
		}
		tran, err := toDomainTransaction(id, number, amount, description, occurredAt)
		if err != nil {
			return nil, err
		}
		out = append(out, tran)
	}
	return out, rows.Err()
}

// saveAccount 版本 1 為 INSERT (重複開戶不影響任何列)，其餘為帶版本條件的 UPDATE
func saveAccount(account *domain.Account, timestamp time.Time) sq.Sqlizer {
	if account.Version == 1 {
		return psql.Insert("accounts").
			Columns("account_number", "balance", "version", "stamped_at", "description").
			Values(account.AccountNumber, account.Balance.String(), account.Version, timestamp, account.Description).
			Suffix("ON CONFLICT (account_number) DO NOTHING")
	}
	return psql.Update("accounts").
		Set("balance", account.Balance.String()).
		Set("version", account.Version).
		Set("stamped_at", timestamp).
		Set("description", account.Description).
		Where(sq.Eq{"account_number": account.AccountNumber, "version": account.Version - 1})
}

func insertTransaction(tran domain.Transaction) sq.InsertBuilder {
	return psql.Insert("transactions").
		Columns("id", "account_number", "amount", "description", "occurred_at").
		Values(tran.ID.String(), tran.AccountNumber, tran.Amount.String(), tran.Description, tran.Timestamp)
}

func selectAccount(accountNumber string, lock bool) sq.SelectBuilder {
	query := psql.Select("account_number", "balance::text", "version", "description").
		From("accounts").
		Where(sq.Eq{"account_number": accountNumber})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}
	return query
}

// selectHistory start/stop 為 nil 時不加時間條件，否則含頭尾
func selectHistory(accountNumber string, start, stop *time.Time) sq.SelectBuilder {
	query := psql.Select("id::text", "account_number", "amount::text", "description", "occurred_at").
		From("transactions").
		Where(sq.Eq{"account_number": accountNumber})
	if start != nil && stop != nil {
		query = query.Where(sq.GtOrEq{"occurred_at": *start}).Where(sq.LtOrEq{"occurred_at": *stop})
	}
	return query.OrderBy("occurred_at ASC", "seq ASC")
}

func toDomainTransaction(id, accountNumber, amount, description string, occurredAt time.Time) (domain.Transaction, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid transaction id %q: %w", id, err)
	}
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount for transaction %s: %w", id, err)
	}
	return domain.Transaction{
		ID:            parsedID,
		AccountNumber: accountNumber,
		Amount:        parsedAmount,
		Description:   description,
		Timestamp:     occurredAt.UTC(),
	}, nil
}

var (
	_ usecase.Store      = (*Store)(nil)
	_ usecase.Transactor = (*Store)(nil)
	_ Pool               = (*pgxpool.Pool)(nil)
	_ querier            = (pgx.Tx)(nil)
)
