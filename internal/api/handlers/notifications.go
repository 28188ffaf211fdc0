// notifications.go — обработчики очереди уведомлений текущей сессии.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
)

// ListNotifications — GET /api/v1/notifications.
// Активные уведомления сессии в порядке постановки (включая выходящие).
func (a *API) ListNotifications(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		apierrors.Unauthorized(w, "требуется аутентификация")
		return
	}

	active := a.hub.Queue(sess.SID).Active()
	writeJSON(w, http.StatusOK, listResponse{Items: active, Total: len(active)})
}

// DismissNotification — DELETE /api/v1/notifications/{id}.
// Досрочно закрывает уведомление. Повторное закрытие — no-op, 204.
func (a *API) DismissNotification(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		apierrors.Unauthorized(w, "требуется аутентификация")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.ValidationError(w, "идентификатор уведомления обязателен")
		return
	}

	a.hub.Queue(sess.SID).Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}
