// handler.go — основной обработчик API goresto.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
// Страницы отдаются JSON-payload'ами: фронтенд рендерит их сам.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/auth"
	"github.com/bigkaa/goresto/internal/cart"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/service"
)

// API — основной обработчик goresto.
type API struct {
	auth     *auth.Service
	carts    *cart.Store
	catalog  *service.CatalogService
	orders   *service.OrderService
	stats    *service.StatsService
	users    *service.UserService
	appRoles *service.AppRoleService
	hub      *notify.Hub
	logger   *slog.Logger
}

// NewAPI создаёт основной обработчик.
func NewAPI(
	authSvc *auth.Service,
	carts *cart.Store,
	catalog *service.CatalogService,
	orders *service.OrderService,
	stats *service.StatsService,
	users *service.UserService,
	appRoles *service.AppRoleService,
	hub *notify.Hub,
	logger *slog.Logger,
) *API {
	return &API{
		auth:     authSvc,
		carts:    carts,
		catalog:  catalog,
		orders:   orders,
		stats:    stats,
		users:    users,
		appRoles: appRoles,
		hub:      hub,
		logger:   logger.With(slog.String("component", "api_handler")),
	}
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON читает JSON-тело запроса в dst.
// Неизвестные поля отклоняются.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// parsePagination нормализует limit/offset из query-параметров.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 100
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// pathID извлекает числовой идентификатор из URL-параметра chi.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierrors.ValidationError(w, "некорректный идентификатор: "+raw)
		return 0, false
	}
	return id, true
}

// listResponse — стандартный конверт постраничных выборок.
type listResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}
