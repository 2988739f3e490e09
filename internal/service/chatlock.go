package service

import "sync"

// ChatLocks реестр взаимных исключений по chat id.
// Создание задачи для одного чата строго последовательно: два
// одновременных автослота иначе выбрали бы один и тот же свободный
// интервал и оба бы его вставили (read-then-write гонка). Это контракт
// корректности, а не оптимизация.
type ChatLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewChatLocks создаёт пустой реестр
func NewChatLocks() *ChatLocks {
	return &ChatLocks{
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock блокирует чат; мьютекс чата создаётся при первом обращении и
// дальше переиспользуется
func (c *ChatLocks) Lock(chatID int64) {
	c.get(chatID).Lock()
}

// Unlock освобождает чат
func (c *ChatLocks) Unlock(chatID int64) {
	c.get(chatID).Unlock()
}

func (c *ChatLocks) get(chatID int64) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, exists := c.locks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		c.locks[chatID] = lock
	}
	return lock
}
