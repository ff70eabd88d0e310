// Package wal 提供以 JSON Lines 格式儲存的 Write-Ahead Log
package wal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// 自己定義常用的權限常量
const (
	// rw-r--r-- (擁有者讀寫，其他人唯讀)
	FileModeReadOnly fs.FileMode = 0644

	// rw------- (只有擁有者可讀寫) - 適用於帳務資料
	FileModePrivate fs.FileMode = 0600
)

// WAL 每一筆 Write 對應檔案中的一行 JSON
// size 是最後一筆完整紀錄的結尾，寫入失敗或讀到不完整的尾端時會截回這個位置
type WAL struct {
	file *os.File
	mu   sync.Mutex
	size int64
}

// NewWAL 開啟或建立一個 WAL 檔案
// O_RDWR 讀寫模式
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func NewWAL(path string) (*WAL, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, FileModePrivate)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &WAL{file: file, size: info.Size()}, nil
}

// Write 寫入一筆資料並刷入硬碟
// 回傳 nil 代表這筆資料已經 fsync；回傳錯誤時檔案會截回寫入前的長度
func (w *WAL) Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(data); err != nil {
		return w.rollback(err)
	}
	if err := w.file.Sync(); err != nil {
		return w.rollback(err)
	}
	w.size += int64(len(data))
	return nil
}

// rollback 丟掉寫到一半的資料，呼叫端需持有鎖
func (w *WAL) rollback(cause error) error {
	if err := w.truncate(w.size); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (w *WAL) truncate(size int64) error {
	if err := w.file.Truncate(size); err != nil {
		return fmt.Errorf("truncate wal to %d bytes: %w", size, err)
	}
	w.size = size
	return w.file.Sync()
}

// Sync 強制刷入硬碟
func (w *WAL) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// Close 關閉檔案
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ReadAll 從頭依序讀取所有資料
// callback 每次收到一筆原始 JSON，避免一次將所有資料載入記憶體
// 最後一行若只寫了一半 (程序在寫入途中被中止)，視為未完成的寫入並從檔案截掉
func (w *WAL) ReadAll(callback func(jsonRaw []byte) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 確保從頭讀取
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	decoder := json.NewDecoder(w.file)
	var good int64
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, io.ErrUnexpectedEOF):
				return w.truncate(w.lineEnd(good))
			default:
				return err
			}
		}
		if err := callback(raw); err != nil {
			return err
		}
		good = decoder.InputOffset()
	}
}

// lineEnd 若 offset 後緊接換行，一併保留
func (w *WAL) lineEnd(offset int64) int64 {
	var b [1]byte
	if _, err := w.file.ReadAt(b[:], offset); err == nil && b[0] == '\n' {
		return offset + 1
	}
	return offset
}
