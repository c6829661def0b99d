package set_slot_active

import "context"

type BookingService interface {
	SetActive(ctx context.Context, slotID int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
