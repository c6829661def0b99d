package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

const paymentColumns = "id, slot_id, user_id, amount, status, external_ref, refund_of, created_at, updated_at"

// Repository репозиторий платежей
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает запись платежа
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "slot_id", "user_id", "amount", "status", "refund_of").
		Values(p.ID, p.SlotID, p.UserID, p.Amount, p.Status, p.RefundOf).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateStatus выполняет guarded-переход статуса платежа.
//
// Переход проверяется в WHERE того же UPDATE, поэтому два конкурентных
// писателя на одной записи не могут применить переход дважды; статус
// не может двинуться назад ни при каком порядке выполнения.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus, externalRef *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update("payments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if externalRef != nil {
		update = update.Set("external_ref", *externalRef)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrInvalidState
}

// ListByUser возвращает платежи пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset uint64) ([]*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns).
		From("payments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPaymentInto(sc rowScanner, p *domain.Payment) error {
	var (
		externalRef          sql.NullString
		refundOf             uuid.NullUUID
		createdAt, updatedAt sql.NullTime
	)

	err := sc.Scan(
		&p.ID,
		&p.SlotID,
		&p.UserID,
		&p.Amount,
		&p.Status,
		&externalRef,
		&refundOf,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	if externalRef.Valid {
		p.ExternalRef = &externalRef.String
	}
	if refundOf.Valid {
		ref := refundOf.UUID
		p.RefundOf = &ref
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return nil
}

func scanPayment(row *sql.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := scanPaymentInto(row, &p)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanPayment - scan payment: %w", ErrScanRow, err)
	}
	return &p, nil
}

func scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		var p domain.Payment
		if err := scanPaymentInto(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %w", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}
