package telegram

import (
	"sync"
	"time"
)

// MessageDeleter удаляет сообщение чата
type MessageDeleter interface {
	DeleteMessage(chatID int64, messageID int) error
}

// Cleaner откладывает удаление служебных сообщений.
//
// Fire-and-forget: задачи не переживают рестарт процесса и не влияют на
// состояние ядра; Stop отменяет все ещё не сработавшие таймеры.
type Cleaner struct {
	deleter MessageDeleter
	logger  Logger

	mu     sync.Mutex
	timers map[int64]*time.Timer
	nextID int64
	closed bool
}

// NewCleaner создает планировщик отложенных удалений
func NewCleaner(deleter MessageDeleter, logger Logger) *Cleaner {
	return &Cleaner{
		deleter: deleter,
		logger:  logger,
		timers:  make(map[int64]*time.Timer),
	}
}

// ScheduleDelete планирует удаление сообщения через delay.
// Возвращаемая функция отменяет задачу, если она ещё не сработала.
func (c *Cleaner) ScheduleDelete(chatID int64, messageID int, delay time.Duration) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}

	id := c.nextID
	c.nextID++

	timer := time.AfterFunc(delay, func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()

		if err := c.deleter.DeleteMessage(chatID, messageID); err != nil {
			c.logger.Warn("Cleaner: %v", err)
		}
	})
	c.timers[id] = timer

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if t, ok := c.timers[id]; ok {
			t.Stop()
			delete(c.timers, id)
		}
	}
}

// Stop отменяет все запланированные задачи
func (c *Cleaner) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
