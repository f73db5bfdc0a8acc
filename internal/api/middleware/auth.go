package middleware

import (
	"net/http"

	"github.com/Dramanable/rv-server-sub004/internal/api/handlers"
)

// Auth требует заголовок X-User-ID.
// Проверка прав принадлежит внешнему контуру платформы; движку бронирования
// достаточно идентификатора инициатора для аудита.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
