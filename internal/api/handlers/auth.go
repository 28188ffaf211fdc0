// auth.go — обработчики входа, выхода и текущей идентичности.
package handlers

import (
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/domain/sessionstate"
	"github.com/bigkaa/goresto/internal/notify"
)

// loginRequest — тело запроса входа.
type loginRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret,omitempty"`
}

// loginResponse — ответ успешного входа.
type loginResponse struct {
	User        any    `json:"user"`
	AccessToken string `json:"access_token"`
}

// Login — POST /api/v1/auth/login.
// Повторный вход поверх активной сессии отклоняется: переход
// authenticated→authenticated запрещён, сначала logout.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		if !sessionstate.CanTransition(sessionstate.StateAuthenticated, sessionstate.StateAuthenticated) {
			apierrors.Conflict(w, "сессия уже активна: выполните выход перед повторным входом")
			return
		}
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}
	if req.Email == "" {
		apierrors.ValidationError(w, "email обязателен")
		return
	}

	result, err := a.auth.Login(r.Context(), w, req.Email, req.Secret)
	if err != nil {
		a.logger.Error("ошибка входа", slog.String("error", err.Error()))
		apierrors.InternalError(w, "ошибка обработки входа")
		return
	}
	if result == nil {
		apierrors.Unauthorized(w, "неверные учётные данные")
		return
	}

	a.hub.Queue(result.Session.SID).Enqueue("Добро пожаловать, "+result.Session.User.Name+"!", notify.SeveritySuccess)

	writeJSON(w, http.StatusOK, loginResponse{
		User:        result.Session.User,
		AccessToken: result.AccessToken,
	})
}

// Logout — POST /api/v1/auth/logout. Идемпотентен.
// Очередь уведомлений сессии закрывается вместе с сессией.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		a.hub.Drop(sess.SID)
	}
	a.auth.Logout(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me — GET /api/v1/auth/me. Текущая идентичность запроса.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		apierrors.Unauthorized(w, "требуется аутентификация")
		return
	}
	writeJSON(w, http.StatusOK, sess.User)
}

// LoginPage — GET /login. JSON-payload страницы входа.
func (a *API) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"page": "login",
		"demo_accounts": []string{
			"customer@example.com",
			"staff@example.com",
			"admin@example.com",
			"superadmin@example.com",
		},
	})
}
