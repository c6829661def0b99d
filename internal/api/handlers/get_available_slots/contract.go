package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type CatalogService interface {
	ListSlots(ctx context.Context, rng domain.DateRange) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
