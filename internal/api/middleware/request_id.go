package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// RequestID присваивает каждому запросу идентификатор и логирует
// начало и завершение обработки
// Идентификатор из входящего заголовка сохраняется, отсутствующий —
// генерируется
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(headerRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(headerRequestID, reqID)

			ctx := context.WithValue(r.Context(), requestIDKey, reqID)

			logger.Info("%s %s - started, request_id=%s, remote=%s",
				r.Method, r.URL.Path, reqID, r.RemoteAddr)

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.Info("%s %s - completed, request_id=%s, duration=%dms",
				r.Method, r.URL.Path, reqID, time.Since(start).Milliseconds())
		})
	}
}

// GetRequestID возвращает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
