package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type CatalogService interface {
	GenerateSlots(ctx context.Context, from, to time.Time, windows []domain.TimeWindow, baseCost int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
