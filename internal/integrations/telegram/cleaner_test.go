package telegram

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingDeleter struct {
	mu      sync.Mutex
	deleted []int
}

func (d *recordingDeleter) DeleteMessage(_ int64, messageID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted = append(d.deleted, messageID)
	return nil
}

func (d *recordingDeleter) snapshot() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.deleted...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCleaner_DeletesAfterDelay(t *testing.T) {
	deleter := &recordingDeleter{}
	cleaner := NewCleaner(deleter, nopLogger{})
	defer cleaner.Stop()

	cleaner.ScheduleDelete(1, 42, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		got := deleter.snapshot()
		return len(got) == 1 && got[0] == 42
	}, time.Second, 5*time.Millisecond)
}

func TestCleaner_CancelPreventsDeletion(t *testing.T) {
	deleter := &recordingDeleter{}
	cleaner := NewCleaner(deleter, nopLogger{})
	defer cleaner.Stop()

	cancel := cleaner.ScheduleDelete(1, 42, 50*time.Millisecond)
	cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, deleter.snapshot())
}

func TestCleaner_StopCancelsAll(t *testing.T) {
	deleter := &recordingDeleter{}
	cleaner := NewCleaner(deleter, nopLogger{})

	cleaner.ScheduleDelete(1, 1, 50*time.Millisecond)
	cleaner.ScheduleDelete(1, 2, 50*time.Millisecond)
	cleaner.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, deleter.snapshot())

	// планирование после Stop - no-op
	cancel := cleaner.ScheduleDelete(1, 3, time.Millisecond)
	cancel()
}
