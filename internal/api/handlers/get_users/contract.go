package get_users

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type AdminService interface {
	ListUsers(ctx context.Context, page, pageSize int) ([]*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
