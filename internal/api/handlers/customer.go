// customer.go — обработчики дерева покупателя: витрина, корзина,
// оформление, отслеживание заказа, профиль.
// Каждая мутация корзины немедленно пишет cookie (write-through).
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/service"
)

// cartResponse — состояние корзины в ответах.
type cartResponse struct {
	Lines     []model.CartLine `json:"lines"`
	ItemCount int              `json:"item_count"`
	Total     int64            `json:"total"`
}

func toCartResponse(c *model.Cart) cartResponse {
	return cartResponse{
		Lines:     c.Lines,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}

// HomePage — GET /. Витрина покупателя: категории и меню.
func (a *API) HomePage(w http.ResponseWriter, r *http.Request) {
	dishes, total, err := a.catalog.List(r.Context(), repository.DishFilter{})
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки меню")
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "home",
		"user":       sess.User,
		"categories": model.Categories(),
		"dishes":     dishes,
		"total":      total,
	})
}

// MenuPage — GET /menu. Каталог с фильтрацией, поиском и сортировкой.
func (a *API) MenuPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	f := repository.DishFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
		Limit:    limit,
		Offset:   offset,
	}

	dishes, total, err := a.catalog.List(r.Context(), f)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки меню")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "menu",
		"categories": model.Categories(),
		"dishes":     dishes,
		"total":      total,
	})
}

// DishPage — GET /dish/{id}. Карточка блюда.
func (a *API) DishPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d, err := a.catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "блюдо не найдено")
			return
		}
		apierrors.InternalError(w, "ошибка загрузки блюда")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page": "dish",
		"dish": d,
	})
}

// CartPage — GET /cart. Текущая корзина.
func (a *API) CartPage(w http.ResponseWriter, r *http.Request) {
	c := a.carts.Load(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"page": "cart",
		"cart": toCartResponse(c),
	})
}

// CheckoutPage — GET /checkout. Корзина плюс контактные данные.
func (a *API) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	c := a.carts.Load(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"page": "checkout",
		"cart": toCartResponse(c),
		"user": sess.User,
	})
}

// --- Мутации корзины ---

// addItemRequest — тело запроса добавления в корзину.
type addItemRequest struct {
	DishID   int64 `json:"dish_id"`
	Quantity int   `json:"quantity"`
}

// AddCartItem — POST /api/v1/cart/items.
// Повторное добавление того же блюда суммирует количество.
func (a *API) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	d, err := a.catalog.Get(r.Context(), req.DishID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "блюдо не найдено")
			return
		}
		apierrors.InternalError(w, "ошибка загрузки блюда")
		return
	}

	c := a.carts.Load(r)
	if err := c.AddItem(*d, req.Quantity); err != nil {
		apierrors.ValidationError(w, "количество должно быть положительным")
		return
	}
	if err := a.carts.Save(w, c); err != nil {
		apierrors.InternalError(w, "ошибка сохранения корзины")
		return
	}

	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		a.hub.Queue(sess.SID).Enqueue(d.Name+" добавлено в корзину", notify.SeveritySuccess)
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// setQuantityRequest — тело запроса изменения количества.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetCartItemQuantity — PATCH /api/v1/cart/items/{id}.
// Количество ≤ 0 удаляет строку; отсутствующее блюдо молча игнорируется.
func (a *API) SetCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	c := a.carts.Load(r)
	c.SetQuantity(id, req.Quantity)
	if err := a.carts.Save(w, c); err != nil {
		apierrors.InternalError(w, "ошибка сохранения корзины")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// RemoveCartItem — DELETE /api/v1/cart/items/{id}.
// Удаление отсутствующего блюда — no-op.
func (a *API) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c := a.carts.Load(r)
	c.RemoveItem(id)
	if err := a.carts.Save(w, c); err != nil {
		apierrors.InternalError(w, "ошибка сохранения корзины")
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// ClearCart — DELETE /api/v1/cart.
func (a *API) ClearCart(w http.ResponseWriter, r *http.Request) {
	a.carts.Clear(w)
	writeJSON(w, http.StatusOK, toCartResponse(model.NewCart()))
}

// --- Оформление и отслеживание ---

// Checkout — POST /api/v1/checkout.
// Оформляет заказ из корзины cookie; корзина после успеха очищается.
func (a *API) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	c := a.carts.Load(r)

	o, err := a.orders.PlaceOrder(r.Context(), sess.User, c)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			apierrors.ValidationError(w, "корзина пуста")
			return
		}
		a.logger.Error("ошибка оформления заказа", slog.String("error", err.Error()))
		apierrors.InternalError(w, "ошибка оформления заказа")
		return
	}

	a.carts.Clear(w)
	a.hub.Queue(sess.SID).Enqueue(
		fmt.Sprintf("Заказ %s оформлен", o.ID), notify.SeveritySuccess)

	writeJSON(w, http.StatusCreated, o)
}

// TrackOrderPage — GET /track-order/{id}.
// Покупатель видит только собственные заказы.
func (a *API) TrackOrderPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	o, err := a.orders.Track(r.Context(), sess.User, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "заказ не найден")
		case errors.Is(err, service.ErrForbidden):
			apierrors.Forbidden(w, "это не ваш заказ")
		default:
			apierrors.InternalError(w, "ошибка загрузки заказа")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "track-order",
		"order": o,
	})
}

// CancelOrder — POST /api/v1/orders/{id}/cancel.
// Отмена возможна до вручения заказа.
func (a *API) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	o, err := a.orders.Cancel(r.Context(), sess.User, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "заказ не найден")
		case errors.Is(err, service.ErrForbidden):
			apierrors.Forbidden(w, "это не ваш заказ")
		case errors.Is(err, service.ErrOrderFinal):
			apierrors.Conflict(w, "заказ уже в конечном статусе")
		default:
			apierrors.InternalError(w, "ошибка отмены заказа")
		}
		return
	}

	a.hub.Queue(sess.SID).Enqueue(
		fmt.Sprintf("Заказ %s отменён", o.ID), notify.SeverityInfo)
	writeJSON(w, http.StatusOK, o)
}

// --- Профиль ---

// ProfilePage — GET /profile. Профиль и история заказов.
func (a *API) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	history, err := a.orders.HistoryForUser(r.Context(), sess.User.ID)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки истории заказов")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":   "profile",
		"user":   sess.User,
		"orders": history,
	})
}

// updateProfileRequest — тело запроса обновления профиля.
type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile — PUT /api/v1/profile.
// Обновляет контактные данные; email и роль не меняются.
func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	u, err := a.users.UpdateProfile(r.Context(), sess.User.ID, req.Name, req.Phone, req.Address)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "пользователь не найден")
			return
		}
		apierrors.InternalError(w, "ошибка обновления профиля")
		return
	}

	// Снимок идентичности в cookie обновляется вместе со справочником,
	// иначе /api/v1/auth/me и страницы показывают старый профиль.
	if err := a.auth.Refresh(w, sess, u); err != nil {
		a.logger.Error("ошибка перевыпуска session cookie", slog.String("error", err.Error()))
		apierrors.InternalError(w, "ошибка обновления профиля")
		return
	}

	a.hub.Queue(sess.SID).Enqueue("Профиль обновлён", notify.SeveritySuccess)
	writeJSON(w, http.StatusOK, u)
}
