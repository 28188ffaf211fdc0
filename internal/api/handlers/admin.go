// admin.go — обработчики дерева администратора: дашборд и управление
// официантами. CRUD ограничен ролью staff: администратор не создаёт
// других администраторов.
package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/service"
)

// AdminDashboardPage — GET /. Дашборд администратора.
func (a *API) AdminDashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	stats, err := a.stats.Dashboard(r.Context())
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки дашборда")
		return
	}

	_, staffTotal, err := a.users.List(r.Context(), roles.RoleStaff, 1, 0)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки персонала")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":        "admin-dashboard",
		"user":        sess.User,
		"stats":       stats,
		"staff_count": staffTotal,
	})
}

// StaffPage — GET /staff. Страница управления официантами.
func (a *API) StaffPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	staff, total, err := a.users.List(r.Context(), roles.RoleStaff, limit, offset)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки персонала")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "manage-staff",
		"staff": staff,
		"total": total,
	})
}

// ListStaff — GET /api/v1/staff.
func (a *API) ListStaff(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	staff, total, err := a.users.List(r.Context(), roles.RoleStaff, limit, offset)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки персонала")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: staff, Total: total})
}

// staffRequest — тело запросов создания/обновления официанта.
type staffRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateStaff — POST /api/v1/staff. Роль всегда staff.
func (a *API) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	u := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    roles.RoleStaff,
		Phone:   req.Phone,
		Address: req.Address,
	}
	created, err := a.users.Create(r.Context(), u)
	if err != nil {
		writeUserServiceError(w, err)
		return
	}

	a.notifySession(r, "Официант "+created.Name+" добавлен", notify.SeveritySuccess)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateStaff — PUT /api/v1/staff/{id}. Роль остаётся staff.
func (a *API) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	existing, err := a.users.Get(r.Context(), id)
	if err != nil {
		writeUserServiceError(w, err)
		return
	}
	if existing.Role != roles.RoleStaff {
		apierrors.Forbidden(w, "администратор управляет только официантами")
		return
	}

	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	u := &model.User{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Role:    roles.RoleStaff,
		Phone:   req.Phone,
		Address: req.Address,
	}
	updated, err := a.users.Update(r.Context(), u)
	if err != nil {
		writeUserServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteStaff — DELETE /api/v1/staff/{id}.
func (a *API) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	existing, err := a.users.Get(r.Context(), id)
	if err != nil {
		writeUserServiceError(w, err)
		return
	}
	if existing.Role != roles.RoleStaff {
		apierrors.Forbidden(w, "администратор управляет только официантами")
		return
	}

	if err := a.users.Delete(r.Context(), id); err != nil {
		writeUserServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// notifySession ставит уведомление в очередь текущей сессии.
func (a *API) notifySession(r *http.Request, message string, severity notify.Severity) {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		a.hub.Queue(sess.SID).Enqueue(message, severity)
	}
}

// writeUserServiceError переводит ошибки UserService в HTTP-ответ.
func writeUserServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "пользователь не найден")
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, "email уже занят")
	default:
		apierrors.InternalError(w, "внутренняя ошибка")
	}
}
