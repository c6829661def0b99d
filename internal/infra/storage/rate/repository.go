package rate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

// Repository репозиторий тарифов категорий
type Repository struct {
	db txmanager.Executor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetByCategory получает тариф категории
func (r *Repository) GetByCategory(ctx context.Context, category domain.UserCategory) (*domain.CategoryRate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("category", "session_cost", "updated_at").
		From("category_rates").
		Where(squirrel.Eq{"category": category}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCategory - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rate      domain.CategoryRate
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rate.Category, &rate.SessionCost, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCategory - scan rate: %w", ErrScanRow, err)
	}
	rate.UpdatedAt = updatedAt.Time

	return &rate, nil
}

// List возвращает все тарифы
func (r *Repository) List(ctx context.Context) ([]*domain.CategoryRate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("category", "session_cost", "updated_at").
		From("category_rates").
		OrderBy("category ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rates := make([]*domain.CategoryRate, 0)
	for rows.Next() {
		var (
			rate      domain.CategoryRate
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&rate.Category, &rate.SessionCost, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		rate.UpdatedAt = updatedAt.Time
		rates = append(rates, &rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return rates, nil
}

// UpdateCost меняет цену сеанса для категории
func (r *Repository) UpdateCost(ctx context.Context, category domain.UserCategory, cost int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("category_rates").
		Set("session_cost", cost).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"category": category}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCost - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCost - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCost - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRateNotFound
	}

	return nil
}
