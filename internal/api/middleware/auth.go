package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TherapyService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	// HeaderUserID заголовок с ID пользователя, проставляется API gateway
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя, проставляется API gateway
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора практики
	RoleAdmin = "admin"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgAdminOnly    = "доступ только для администратора"
)

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя
// в контекст запроса. Заголовок проставляет API gateway после проверки
// токена, сервис ему доверяет.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if role := r.Header.Get(HeaderUserRole); role != "" {
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin пропускает только запросы с ролью admin.
// Используется поверх Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(userRoleKey).(string)
		if !ok || role != RoleAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext возвращает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
