package domain

import "errors"

var (
	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmptyAccountNumber 帳號不可為空
	ErrEmptyAccountNumber = errors.New("account number must not be empty")

	// ErrInvalidAmount 金額必須為正數
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrVersionConflict 帳戶快照版本衝突 (併發寫入)
	ErrVersionConflict = errors.New("account version conflict")

	// ErrWALWriteFailed 寫入 WAL 失敗
	ErrWALWriteFailed = errors.New("wal write failed")
)
