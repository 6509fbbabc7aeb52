package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ClientAddress подставляет адрес клиента из X-Forwarded-For/X-Real-IP только за доверенным прокси.
// Без прокси RemoteAddr остается адресом сокета, и заголовки клиента игнорируются.
func ClientAddress(trustProxyHeaders bool) func(http.Handler) http.Handler {
	if trustProxyHeaders {
		return chimw.RealIP
	}
	return func(next http.Handler) http.Handler {
		return next
	}
}
