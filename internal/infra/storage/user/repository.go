package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

const userColumns = "id, name, surname, phone_number, category, verification, role, card_ref, verification_token, active, created_at, updated_at"

// Код PostgreSQL unique_violation
const uniqueViolation = "23505"

// Repository репозиторий пользователей
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя. ID приходит извне (стабильный идентификатор
// из транспорта), поэтому повторная вставка - это ErrUserExists.
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns(
			"id",
			"name",
			"surname",
			"phone_number",
			"category",
			"verification",
			"role",
			"card_ref",
			"verification_token",
			"active",
		).
		Values(
			u.ID,
			u.Name,
			u.Surname,
			u.Phone,
			u.Category,
			u.Verification,
			u.Role,
			u.CardRef,
			u.VerificationToken,
			u.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return u, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = scanUserInto(executor.QueryRowContext(ctx, query, args...), &u)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}

	return &u, nil
}

// List возвращает пользователей постранично, по возрастанию ID
func (r *Repository) List(ctx context.Context, limit, offset uint64) ([]*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns).
		From("users").
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := scanUserInto(rows, &u); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserInto(sc rowScanner, u *domain.User) error {
	var (
		phone, cardRef, token sql.NullString
		createdAt, updatedAt  sql.NullTime
	)

	err := sc.Scan(
		&u.ID,
		&u.Name,
		&u.Surname,
		&phone,
		&u.Category,
		&u.Verification,
		&u.Role,
		&cardRef,
		&token,
		&u.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}
	if cardRef.Valid {
		u.CardRef = &cardRef.String
	}
	if token.Valid {
		u.VerificationToken = &token.String
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return nil
}
