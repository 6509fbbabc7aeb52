package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoshop/garage-booking/pkg/logger"
	"github.com/autoshop/garage-booking/pkg/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{name: "valid token", configured: "s3cret", header: "s3cret", wantStatus: http.StatusNoContent},
		{name: "wrong token", configured: "s3cret", header: "guess", wantStatus: http.StatusUnauthorized},
		{name: "missing header", configured: "s3cret", wantStatus: http.StatusUnauthorized},
		{name: "no token configured", configured: "", header: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AdminAuth(tt.configured, logger.Nop())(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
			if tt.header != "" {
				req.Header.Set(AdminTokenHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), msgUnauthorized)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(60, 2, logger.Nop())
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	h := limiter.Middleware(okHandler())

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	// Другой клиент не страдает от чужого лимита
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:5000"))

	// Через секунду пополняется один токен (60 в минуту)
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5003"))
}

func TestRateLimiter_ForwardedHeaders(t *testing.T) {
	tests := []struct {
		name         string
		trustProxy   bool
		wantCodes    []int
		wantVisitors int
	}{
		{
			name:         "untrusted headers are ignored",
			trustProxy:   false,
			wantCodes:    []int{http.StatusNoContent, http.StatusTooManyRequests, http.StatusTooManyRequests},
			wantVisitors: 1,
		},
		{
			name:         "trusted proxy headers identify the client",
			trustProxy:   true,
			wantCodes:    []int{http.StatusNoContent, http.StatusNoContent, http.StatusNoContent},
			wantVisitors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(60, 1, logger.Nop())
			now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
			limiter.now = func() time.Time { return now }
			h := ClientAddress(tt.trustProxy)(limiter.Middleware(okHandler()))

			forwarded := []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"}
			codes := make([]int, 0, len(forwarded))
			for _, ip := range forwarded {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
				req.RemoteAddr = "203.0.113.7:40000"
				req.Header.Set("X-Forwarded-For", ip)
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
				codes = append(codes, rec.Code)
			}

			assert.Equal(t, tt.wantCodes, codes)
			assert.Len(t, limiter.visitors, tt.wantVisitors)
		})
	}
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(60, 1, logger.Nop())
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	require.Len(t, limiter.visitors, 1)

	now = now.Add(2 * limiterIdleTTL)
	require.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.visitors, 1)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New("garage_test", reg)

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/appointments/{reference}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, ref := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+ref, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP garage_test_http_requests_total Count of HTTP requests by method, route and status code.
# TYPE garage_test_http_requests_total counter
garage_test_http_requests_total{method="GET",route="/api/v1/appointments/{reference}",status="404"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "garage_test_http_requests_total"))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	h := MetricsMiddleware(nil)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLogging_WithRequestID(t *testing.T) {
	h := chimw.RequestID(Logging(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, chimw.GetReqID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
