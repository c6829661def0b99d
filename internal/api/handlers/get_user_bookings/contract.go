package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type BookingLister interface {
	ListBookingsForUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
