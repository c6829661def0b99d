package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

const slotColumns = "id, session_date, time_window, cost, state, active, booked_by, created_at, updated_at"

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает слоты пачкой. Вызывается только внутри транзакции
// генератора каталога: либо все слоты создаются, либо ни одного.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("slots").
		Columns("session_date", "time_window", "cost", "state", "active")

	for _, s := range slots {
		insert = insert.Values(s.Date, s.Window, s.Cost, s.State, s.Active)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
	}

	return int(created), nil
}

// ListKeys возвращает множество существующих (date, window) ключей диапазона.
// Используется генератором для идемпотентности.
func (r *Repository) ListKeys(ctx context.Context, rng domain.DateRange) (map[domain.SlotKey]struct{}, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("session_date", "time_window").
		From("slots").
		Where(squirrel.GtOrEq{"session_date": rng.From}).
		Where(squirrel.LtOrEq{"session_date": rng.To}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListKeys - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make(map[domain.SlotKey]struct{})
	for rows.Next() {
		var (
			date   sql.NullTime
			window string
		)
		if err := rows.Scan(&date, &window); err != nil {
			return nil, fmt.Errorf("%w: ListKeys - scan row: %w", ErrScanRow, err)
		}
		keys[domain.SlotKey{
			Date:   date.Time.Format(domain.DateFormat),
			Window: domain.TimeWindow(window),
		}] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListKeys - rows error: %w", ErrScanRow, err)
	}

	return keys, nil
}

// List возвращает слоты диапазона, упорядоченные по дате и началу окна
func (r *Repository) List(ctx context.Context, rng domain.DateRange) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.GtOrEq{"session_date": rng.From}).
		Where(squirrel.LtOrEq{"session_date": rng.To}).
		OrderBy("session_date ASC", "time_window ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListBookedBy возвращает слоты, забронированные пользователем
func (r *Repository) ListBookedBy(ctx context.Context, userID int64, limit, offset uint64) ([]*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"booked_by": userID}).
		OrderBy("session_date DESC", "time_window DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...))
}

// Reserve атомарно переводит слот available -> reserved.
//
// Compare-and-swap: условие WHERE проверяет состояние в том же UPDATE,
// поэтому из N конкурентных вызовов на один слот победит ровно один,
// остальные получат ErrSlotConflict.
func (r *Repository) Reserve(ctx context.Context, slotID, userID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotReserved).
		Set("booked_by", userID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     slotID,
			"state":  domain.SlotAvailable,
			"active": true,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 1 {
		return nil
	}

	return r.classifyReserveFailure(ctx, slotID)
}

// Confirm переводит слот reserved -> booked
func (r *Repository) Confirm(ctx context.Context, slotID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "state": domain.SlotReserved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, slotID); err != nil {
		return err
	}
	return ErrInvalidTransition
}

// Release переводит слот reserved|booked -> available и снимает бронь.
// Если слот уже available - no-op.
func (r *Repository) Release(ctx context.Context, slotID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.SlotAvailable).
		Set("booked_by", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"state": []domain.SlotState{domain.SlotReserved, domain.SlotBooked}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 1 {
		return nil
	}

	// слот либо отсутствует, либо уже available (no-op)
	_, err = r.GetByID(ctx, slotID)
	return err
}

// SetActive переключает админскую активность слота.
// Слот с привязанной бронью переключать нельзя.
func (r *Repository) SetActive(ctx context.Context, slotID int64, active bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where("booked_by IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 1 {
		return nil
	}

	s, err := r.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if s.HasBooking() {
		return ErrSlotBooked
	}
	return fmt.Errorf("%w: SetActive - slot id=%d", ErrExecQuery, slotID)
}

func (r *Repository) classifyReserveFailure(ctx context.Context, slotID int64) error {
	s, err := r.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	if !s.Active {
		return ErrSlotInactive
	}
	return ErrSlotConflict
}

func (r *Repository) scanSlot(row *sql.Row) (*domain.Slot, error) {
	var (
		s                    domain.Slot
		window               string
		bookedBy             sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.Date,
		&window,
		&s.Cost,
		&s.State,
		&s.Active,
		&bookedBy,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSlot - scan slot: %w", ErrScanRow, err)
	}

	s.Window = domain.TimeWindow(window)
	if bookedBy.Valid {
		s.BookedBy = &bookedBy.Int64
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var (
			s                    domain.Slot
			window               string
			bookedBy             sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&s.ID,
			&s.Date,
			&window,
			&s.Cost,
			&s.State,
			&s.Active,
			&bookedBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}

		s.Window = domain.TimeWindow(window)
		if bookedBy.Valid {
			s.BookedBy = &bookedBy.Int64
		}
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
