package usecase

import "sync"

// accountLocker 依帳號提供互斥鎖，讓同一帳戶的讀取-計算-寫入序列化
// 不同帳戶互不阻塞；沒有人持有時會從 map 移除，避免無限成長
type accountLocker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocker() *accountLocker {
	return &accountLocker{
		locks: make(map[string]*accountLock),
	}
}

// Lock 鎖定帳號並回傳解鎖函式
func (l *accountLocker) Lock(accountNumber string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[accountNumber]
	if !ok {
		lock = &accountLock{}
		l.locks[accountNumber] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, accountNumber)
		}
		l.mu.Unlock()
	}
}

// size 回傳目前登記中的帳號數量 (測試用)
func (l *accountLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
