package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging пишет по строке на каждый запрос вместе с request id
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			reqID := chimw.GetReqID(r.Context())
			duration := time.Since(start)

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
			default:
				logger.Info("%s %s - %d in %s, request_id=%s", r.Method, r.URL.Path, rec.status, duration, reqID)
			}
		})
	}
}
