package onboarding

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

const sessionColumns = "user_id, step, category, verification_token, name, surname, card_ref, first_message_id, created_at, updated_at"

// Repository репозиторий сессий онбординга
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория сессий онбординга
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет сессию пользователя
func (r *Repository) Upsert(ctx context.Context, s *domain.OnboardingSession) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("onboarding_sessions").
		Columns("user_id", "step", "category", "verification_token", "name", "surname", "card_ref", "first_message_id").
		Values(s.UserID, s.Step, s.Category, s.VerificationToken, s.Name, s.Surname, s.CardRef, s.FirstMessageID).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			step = EXCLUDED.step,
			category = EXCLUDED.category,
			verification_token = EXCLUDED.verification_token,
			name = EXCLUDED.name,
			surname = EXCLUDED.surname,
			card_ref = EXCLUDED.card_ref,
			first_message_id = EXCLUDED.first_message_id,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByUserID получает сессию по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.OnboardingSession, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns).
		From("onboarding_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s                             domain.OnboardingSession
		category                      sql.NullString
		token, name, surname, cardRef sql.NullString
		firstMessageID                sql.NullInt64
		createdAt, updatedAt          sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.UserID,
		&s.Step,
		&category,
		&token,
		&name,
		&surname,
		&cardRef,
		&firstMessageID,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan session: %w", ErrScanRow, err)
	}

	if category.Valid {
		c := domain.UserCategory(category.String)
		s.Category = &c
	}
	if token.Valid {
		s.VerificationToken = &token.String
	}
	if name.Valid {
		s.Name = &name.String
	}
	if surname.Valid {
		s.Surname = &surname.String
	}
	if cardRef.Valid {
		s.CardRef = &cardRef.String
	}
	if firstMessageID.Valid {
		s.FirstMessageID = &firstMessageID.Int64
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Delete удаляет сессию (завершение или отказ от онбординга)
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("onboarding_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteAbandoned удаляет сессии, не обновлявшиеся дольше окна брошенности
func (r *Repository) DeleteAbandoned(ctx context.Context, olderThan time.Time) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("onboarding_sessions").
		Where(squirrel.Lt{"updated_at": olderThan}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAbandoned - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}
