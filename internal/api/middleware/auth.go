package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/Clinic-AppointmentService/internal/api/handlers"
	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
	requestIDKey
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingIdentity = "не переданы заголовки идентификации"
	msgInvalidIdentity = "некорректные заголовки идентификации"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает личность вызывающего из заголовков X-User-ID и X-User-Role
// и кладёт её в контекст запроса
// Запросы без корректной пары заголовков отклоняются с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(headerUserID)
			rawRole := r.Header.Get(headerUserRole)

			if rawID == "" || rawRole == "" {
				logger.Warn("%s %s - missing identity headers", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerUserID, rawID)
				handlers.RespondUnauthorized(w, msgInvalidIdentity)
				return
			}

			role, ok := domain.ParseRole(rawRole)
			if !ok {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, headerUserRole, rawRole)
				handlers.RespondUnauthorized(w, msgInvalidIdentity)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID вызывающего из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль вызывающего из контекста
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.Role)
	return role, ok
}
