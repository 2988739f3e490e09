package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatLocks_SerializesSameChat(t *testing.T) {
	locks := NewChatLocks()

	const workers = 16
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(42)
			defer locks.Unlock(42)
			// Без взаимного исключения это классическая гонка
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestChatLocks_ReusesMutexPerChat(t *testing.T) {
	locks := NewChatLocks()

	first := locks.get(7)
	second := locks.get(7)
	assert.Same(t, first, second, "same chat id must map to one mutex")

	other := locks.get(8)
	assert.NotSame(t, first, other, "different chats lock independently")
}

func TestChatLocks_DifferentChatsDoNotBlock(t *testing.T) {
	locks := NewChatLocks()

	locks.Lock(1)
	defer locks.Unlock(1)

	done := make(chan struct{})
	go func() {
		locks.Lock(2)
		locks.Unlock(2)
		close(done)
	}()

	<-done // повисли бы здесь, будь блокировка общей
}
