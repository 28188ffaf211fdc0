// metrics.go — Prometheus HTTP метрики goresto.
// Регистрирует метрики: gr_http_requests_total, gr_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gr_http_requests_total",
			Help: "Общее количество HTTP-запросов к goresto",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gr_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к goresto в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем идентификаторы на {id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// normalizePath заменяет идентификаторы в пути на {id} для
// предотвращения взрывного роста кардинальности метрик.
// /api/v1/staff/7 → /api/v1/staff/{id}, /dish/3 → /dish/{id}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/", "/login", "/menu", "/cart", "/checkout", "/profile",
		"/new-order", "/order-history", "/staff", "/roles", "/users", "/items",
		"/health/live", "/health/ready", "/metrics",
		"/api/v1/auth/login", "/api/v1/auth/logout", "/api/v1/auth/me",
		"/api/v1/notifications", "/api/v1/cart", "/api/v1/cart/items",
		"/api/v1/checkout", "/api/v1/profile", "/api/v1/staff",
		"/api/v1/roles", "/api/v1/users", "/api/v1/items",
		"/api/v1/openapi.yaml":
		return path
	}

	// Динамические пути с идентификатором в последнем сегменте
	prefixes := []struct {
		prefix string
		result string
	}{
		{"/dish/", "/dish/{id}"},
		{"/track-order/", "/track-order/{id}"},
		{"/api/v1/cart/items/", "/api/v1/cart/items/{id}"},
		{"/api/v1/notifications/", "/api/v1/notifications/{id}"},
		{"/api/v1/orders/", "/api/v1/orders/{id}"},
		{"/api/v1/staff/", "/api/v1/staff/{id}"},
		{"/api/v1/roles/", "/api/v1/roles/{id}"},
		{"/api/v1/users/", "/api/v1/users/{id}"},
		{"/api/v1/items/", "/api/v1/items/{id}"},
	}

	for _, p := range prefixes {
		if strings.HasPrefix(path, p.prefix) && len(path) > len(p.prefix) {
			rest := path[len(p.prefix):]
			// Суффиксы после идентификатора (/api/v1/orders/{id}/cancel)
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				return p.result + rest[i:]
			}
			return p.result
		}
	}

	return path
}
