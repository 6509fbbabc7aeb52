package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/autoshop/garage-booking/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const msgUnauthorized = "invalid or missing admin token"

// AdminAuth пропускает только запросы с верным X-Admin-Token.
// Пустой токен в конфиге закрывает админские маршруты целиком.
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(AdminTokenHeader))

			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				logger.Warn("%s %s - admin token rejected, remote=%s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
