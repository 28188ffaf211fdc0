// superadmin.go — обработчики дерева суперадминистратора:
// дашборд и три CRUD-раздела — роли, пользователи, позиции каталога.
// CRUD ролей демонстрационный: записи не влияют на маршрутизацию.
package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/bigkaa/goresto/internal/api/errors"
	"github.com/bigkaa/goresto/internal/api/middleware"
	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
	"github.com/bigkaa/goresto/internal/notify"
	"github.com/bigkaa/goresto/internal/repository"
	"github.com/bigkaa/goresto/internal/service"
)

// SuperadminDashboardPage — GET /. Сводный дашборд.
func (a *API) SuperadminDashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	stats, err := a.stats.Dashboard(r.Context())
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки дашборда")
		return
	}

	_, usersTotal, err := a.users.List(r.Context(), "", 1, 0)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки пользователей")
		return
	}

	_, dishesTotal, err := a.catalog.List(r.Context(), repository.DishFilter{Limit: 1})
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки каталога")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"page":        "superadmin-dashboard",
		"user":        sess.User,
		"stats":       stats,
		"users_total": usersTotal,
		"items_total": dishesTotal,
	})
}

// --- Управление ролями (демонстрационный CRUD) ---

// RolesPage — GET /roles.
func (a *API) RolesPage(w http.ResponseWriter, r *http.Request) {
	list, err := a.appRoles.List(r.Context())
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки ролей")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "manage-roles",
		"roles": list,
	})
}

// ListAppRoles — GET /api/v1/roles.
func (a *API) ListAppRoles(w http.ResponseWriter, r *http.Request) {
	list, err := a.appRoles.List(r.Context())
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки ролей")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: list, Total: len(list)})
}

// appRoleRequest — тело запросов CRUD ролей.
type appRoleRequest struct {
	Name string `json:"name"`
}

// CreateAppRole — POST /api/v1/roles.
func (a *API) CreateAppRole(w http.ResponseWriter, r *http.Request) {
	var req appRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	ar, err := a.appRoles.Create(r.Context(), req.Name)
	if err != nil {
		writeAppRoleError(w, err)
		return
	}

	a.notifySession(r, "Роль "+ar.Name+" создана", notify.SeveritySuccess)
	writeJSON(w, http.StatusCreated, ar)
}

// UpdateAppRole — PUT /api/v1/roles/{id}.
func (a *API) UpdateAppRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req appRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	ar, err := a.appRoles.Update(r.Context(), id, req.Name)
	if err != nil {
		writeAppRoleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ar)
}

// DeleteAppRole — DELETE /api/v1/roles/{id}.
func (a *API) DeleteAppRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := a.appRoles.Delete(r.Context(), id); err != nil {
		writeAppRoleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Управление пользователями ---

// UsersPage — GET /users.
func (a *API) UsersPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	list, total, err := a.users.List(r.Context(), "", limit, offset)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки пользователей")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":  "manage-users",
		"users": list,
		"total": total,
	})
}

// ListUsers — GET /api/v1/users. role — опциональный фильтр.
func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var role roles.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := roles.Parse(raw)
		if err != nil {
			apierrors.ValidationError(w, "неизвестная роль: "+raw)
			return
		}
		role = parsed
	}

	list, total, err := a.users.List(r.Context(), role, limit, offset)
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки пользователей")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: list, Total: total})
}

// userRequest — тело запросов CRUD пользователей.
type userRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateUser — POST /api/v1/users.
func (a *API) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	u := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    roles.Role(req.Role),
		Phone:   req.Phone,
		Address: req.Address,
	}
	created, err := a.users.Create(r.Context(), u)
	if err != nil {
		writeUserServiceError(w, err)
		return
	}

	a.notifySession(r, "Пользователь "+created.Name+" создан", notify.SeveritySuccess)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateUser — PUT /api/v1/users/{id}.
func (a *API) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	u := &model.User{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Role:    roles.Role(req.Role),
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

// DeleteUser — DELETE /api/v1/users/{id}.
// Суперадминистратор не может удалить сам себя.
func (a *API) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	if sess.User.ID == id {
		apierrors.Conflict(w, "нельзя удалить собственную учётную запись")
		return
	}

	if err := a.users.Delete(r.Context(), id); err != nil {
		writeUserServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Управление позициями каталога ---

// ItemsPage — GET /items.
func (a *API) ItemsPage(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	dishes, total, err := a.catalog.List(r.Context(), repository.DishFilter{Limit: limit, Offset: offset})
	if err != nil {
		apierrors.InternalError(w, "ошибка загрузки каталога")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":       "manage-items",
		"items":      dishes,
		"total":      total,
		"categories": model.Categories(),
	})
}

// ListItems — GET /api/v1/items.
func (a *API) ListItems(w http.ResponseWriter, r *http.Request) {
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
		apierrors.InternalError(w, "ошибка загрузки каталога")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: dishes, Total: total})
}

// itemRequest — тело запросов CRUD позиций каталога.
type itemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

func (req *itemRequest) toDish(id int64) *model.Dish {
	return &model.Dish{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
	}
}

// CreateItem — POST /api/v1/items.
func (a *API) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	created, err := a.catalog.Create(r.Context(), req.toDish(0))
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	a.notifySession(r, "Блюдо "+created.Name+" добавлено", notify.SeveritySuccess)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateItem — PUT /api/v1/items/{id}.
func (a *API) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.ValidationError(w, "некорректное тело запроса: "+err.Error())
		return
	}

	updated, err := a.catalog.Update(r.Context(), req.toDish(id))
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem — DELETE /api/v1/items/{id}.
func (a *API) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := a.catalog.Delete(r.Context(), id); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeAppRoleError переводит ошибки AppRoleService в HTTP-ответ.
func writeAppRoleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "роль не найдена")
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, "роль с таким именем уже существует")
	default:
		apierrors.InternalError(w, "внутренняя ошибка")
	}
}

// writeCatalogError переводит ошибки CatalogService в HTTP-ответ.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "блюдо не найдено")
	default:
		apierrors.InternalError(w, "внутренняя ошибка")
	}
}
