package update_category_rate

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type CatalogService interface {
	ChangeCategoryRate(ctx context.Context, category domain.UserCategory, newCost int64) error
	ListRates(ctx context.Context) ([]*domain.CategoryRate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
