// staff.go — обработчики дерева официанта: дашборд, оформление заказа
// в зале, история заказов. Корзина и checkout общие с покупателем —
// отличается только PlacedBy в заказе (роль берётся из сессии).
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/repository"
)

// StaffDashboardPage — GET /. Дашборд официанта.
func (a *API) StaffDashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	stats, err := a.stats.Dashboard(r.Context())
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки дашборда")
		return
	}

	recent, _, err := a.orders.History(r.Context(), 10, 0)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки заказов")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":          "staff-dashboard",
		"user":          sess.User,
		"stats":         stats,
		"recent_orders": recent,
	})
}

// NewOrderPage — GET /new-order. Каталог для заказа в зале.
func (a *API) NewOrderPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	f := repository.DishFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    limit,
		Offset:   offset,
	}

	dishes, total, err := a.catalog.List(r.Context(), f)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки меню")
		return
	}

	c := a.carts.Load(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "new-order",
		"categories": model.Categories(),
		"dishes":     dishes,
		"total":      total,
		"cart":       toCartResponse(c),
	})
}

// OrderHistoryPage — GET /order-history. Все заказы постранично.
func (a *API) OrderHistoryPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	orders, total, err := a.orders.History(r.Context(), limit, offset)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки истории заказов")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":   "order-history",
		"orders": orders,
		"total":  total,
	})
}
