// Package clock 提供 usecase.TimeSource 的實作
package clock

import (
	"sync"
	"time"
)

// System 系統時間，UTC 並截斷至毫秒
type System struct{}

// Now 回傳目前時間
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Manual 可手動設定的時間來源，測試與壓測用
// 執行緒安全 (Thread-safe)
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual 建立固定在 t 的時間來源
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now 回傳目前設定的時間
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set 設定時間
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance 將時間往後推 d
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}
