package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserProvider интерфейс получения пользователя для проверки роли
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет наличие X-User-ID и кладёт его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// RequireOperator пропускает только пользователей с ролью оператора.
// Ставится после Auth.
func RequireOperator(users UserProvider, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					handlers.RespondForbidden(w, "доступ только для операторов")
					return
				}
				logger.Error("RequireOperator: failed to get user %d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !u.IsOperator() {
				logger.Warn("RequireOperator: user %d denied", userID)
				handlers.RespondForbidden(w, "доступ только для операторов")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
