// Package txmanager управляет сериализуемыми транзакциями PostgreSQL.
//
// Менеджер кладет открытую транзакцию в context; репозитории достают её
// через GetExecutor и таким образом прозрачно присоединяются к транзакции,
// не зная о ней напрямую.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Executor общий интерфейс для *sql.DB и *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// GetExecutor возвращает транзакцию из контекста, если она там есть,
// иначе переданный fallback (обычно *sql.DB репозитория)
func GetExecutor(ctx context.Context, fallback Executor) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли контекст внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

const (
	maxRetries   = 3
	retryBackoff = 20 * time.Millisecond

	// Коды PostgreSQL, при которых сериализуемую транзакцию можно повторить
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

var (
	// ErrTxBegin возвращается при ошибке открытия транзакции
	ErrTxBegin = errors.New("txmanager: failed to begin transaction")

	// ErrTxCommit возвращается при ошибке фиксации транзакции
	ErrTxCommit = errors.New("txmanager: failed to commit transaction")
)

// Manager менеджер сериализуемых транзакций
type Manager struct {
	db *sql.DB
}

// NewManager создает новый менеджер транзакций
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем SERIALIZABLE.
// При serialization failure / deadlock транзакция повторяется целиком,
// до maxRetries раз. Любая другая ошибка откатывает транзакцию и
// возвращается вызывающему как есть.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("txmanager: retries exhausted: %w", lastErr)
}

func (m *Manager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTxBegin, err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Конфликт сериализации чаще всего проявляется именно на Commit;
	// цепочка ошибок сохраняется, чтобы isRetryable увидел код pq
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrTxCommit, err)
	}

	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
}
