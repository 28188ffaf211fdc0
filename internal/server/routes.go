// routes.go — закрытая статическая таблица маршрутов по ролям.
// Каждая роль получает собственное непересекающееся дерево; общие для
// всех аутентифицированных деревьев endpoints монтируются в каждое.
// При старте таблица сверяется с OpenAPI-контрактом: необъявленный в
// контракте маршрут — ошибка конфигурации, а не тихий пропуск.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goresto/internal/api/contract"
	"github.com/bigkaa/goresto/internal/api/handlers"
	"github.com/bigkaa/goresto/internal/domain/roles"
)

// loginPaths — дерево анонимного пользователя: только вход.
var loginPaths = []string{
	"/login",
	"/api/v1/auth/login",
}

// sharedPaths — endpoints, присутствующие в каждом аутентифицированном
// дереве: вход (отклоняется 409 поверх активной сессии), выход,
// текущая идентичность, уведомления, контракт.
var sharedPaths = []string{
	"/api/v1/auth/login",
	"/api/v1/auth/logout",
	"/api/v1/auth/me",
	"/api/v1/notifications",
	"/api/v1/notifications/{id}",
	"/api/v1/openapi.yaml",
}

// systemPaths — служебные endpoints вне ролевой диспетчеризации.
var systemPaths = []string{
	"/health/live",
	"/health/ready",
	"/metrics",
}

// routeTable — маршруты каждой роли в нотации контракта.
// Таблица закрыта: динамических ролей нет, деревья не наследуются.
var routeTable = map[roles.Role][]string{
	roles.RoleCustomer: {
		"/",
		"/menu",
		"/dish/{id}",
		"/cart",
		"/checkout",
		"/track-order/{id}",
		"/profile",
		"/api/v1/cart",
		"/api/v1/cart/items",
		"/api/v1/cart/items/{id}",
		"/api/v1/checkout",
		"/api/v1/orders/{id}/cancel",
		"/api/v1/profile",
	},
	roles.RoleStaff: {
		"/",
		"/new-order",
		"/checkout",
		"/order-history",
		"/api/v1/cart",
		"/api/v1/cart/items",
		"/api/v1/cart/items/{id}",
		"/api/v1/checkout",
		"/api/v1/orders/{id}/cancel",
	},
	roles.RoleAdmin: {
		"/",
		"/staff",
		"/api/v1/staff",
		"/api/v1/staff/{id}",
	},
	roles.RoleSuperadmin: {
		"/",
		"/roles",
		"/users",
		"/items",
		"/api/v1/roles",
		"/api/v1/roles/{id}",
		"/api/v1/users",
		"/api/v1/users/{id}",
		"/api/v1/items",
		"/api/v1/items/{id}",
	},
}

// verifyRouteTable проверяет полноту и согласованность таблицы:
// каждая роль перечисления покрыта, каждый объявленный путь описан
// в контракте. Вызывается при старте; ошибка останавливает процесс —
// пятая роль или опечатка в пути не должны проваливаться молча.
func verifyRouteTable(c *contract.Contract) error {
	for _, role := range roles.All() {
		paths, ok := routeTable[role]
		if !ok {
			return fmt.Errorf("роль %s не покрыта таблицей маршрутов", role)
		}
		for _, p := range paths {
			if !c.HasPath(p) {
				return fmt.Errorf("маршрут %s роли %s отсутствует в контракте", p, role)
			}
		}
	}

	for _, group := range [][]string{loginPaths, sharedPaths, systemPaths} {
		for _, p := range group {
			if !c.HasPath(p) {
				return fmt.Errorf("маршрут %s отсутствует в контракте", p)
			}
		}
	}
	return nil
}

// redirectTo возвращает обработчик редиректа на указанный путь.
func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// buildLoginRouter собирает дерево анонимного пользователя.
// Любой незнакомый путь ведёт на /login.
func buildLoginRouter(api *handlers.API) chi.Router {
	r := chi.NewRouter()
	r.Get("/login", api.LoginPage)
	r.Post("/api/v1/auth/login", api.Login)
	r.NotFound(redirectTo("/login"))
	return r
}

// mountShared монтирует общие endpoints аутентифицированных деревьев.
// Login монтируется и здесь: повторный вход поверх активной сессии
// должен дойти до обработчика и получить 409, а не редирект.
func mountShared(r chi.Router, api *handlers.API, c *contract.Contract) {
	r.Post("/api/v1/auth/login", api.Login)
	r.Post("/api/v1/auth/logout", api.Logout)
	r.Get("/api/v1/auth/me", api.Me)
	r.Get("/api/v1/notifications", api.ListNotifications)
	r.Delete("/api/v1/notifications/{id}", api.DismissNotification)
	r.Get("/api/v1/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(c.Raw())
	})
}

// mountCartAPI монтирует операции корзины и оформления заказа.
// Дерево официанта использует их наравне с покупательским.
func mountCartAPI(r chi.Router, api *handlers.API) {
	r.Delete("/api/v1/cart", api.ClearCart)
	r.Post("/api/v1/cart/items", api.AddCartItem)
	r.Patch("/api/v1/cart/items/{id}", api.SetCartItemQuantity)
	r.Delete("/api/v1/cart/items/{id}", api.RemoveCartItem)
	r.Post("/api/v1/checkout", api.Checkout)
	r.Post("/api/v1/orders/{id}/cancel", api.CancelOrder)
}

// buildRoleRouters собирает дерево каждой роли.
// Незнакомый путь внутри дерева редиректится на его корень.
func buildRoleRouters(api *handlers.API, c *contract.Contract) map[roles.Role]chi.Router {
	customer := chi.NewRouter()
	customer.Get("/", api.HomePage)
	customer.Get("/menu", api.MenuPage)
	customer.Get("/dish/{id}", api.DishPage)
	customer.Get("/cart", api.CartPage)
	customer.Get("/checkout", api.CheckoutPage)
	customer.Get("/track-order/{id}", api.TrackOrderPage)
	customer.Get("/profile", api.ProfilePage)
	customer.Put("/api/v1/profile", api.UpdateProfile)
	mountCartAPI(customer, api)

	staff := chi.NewRouter()
	staff.Get("/", api.StaffDashboardPage)
	staff.Get("/new-order", api.NewOrderPage)
	staff.Get("/checkout", api.CheckoutPage)
	staff.Get("/order-history", api.OrderHistoryPage)
	mountCartAPI(staff, api)

	admin := chi.NewRouter()
	admin.Get("/", api.AdminDashboardPage)
	admin.Get("/staff", api.StaffPage)
	admin.Get("/api/v1/staff", api.ListStaff)
	admin.Post("/api/v1/staff", api.CreateStaff)
	admin.Put("/api/v1/staff/{id}", api.UpdateStaff)
	admin.Delete("/api/v1/staff/{id}", api.DeleteStaff)

	superadmin := chi.NewRouter()
	superadmin.Get("/", api.SuperadminDashboardPage)
	superadmin.Get("/roles", api.RolesPage)
	superadmin.Get("/users", api.UsersPage)
	superadmin.Get("/items", api.ItemsPage)
	superadmin.Get("/api/v1/roles", api.ListAppRoles)
	superadmin.Post("/api/v1/roles", api.CreateAppRole)
	superadmin.Put("/api/v1/roles/{id}", api.UpdateAppRole)
	superadmin.Delete("/api/v1/roles/{id}", api.DeleteAppRole)
	superadmin.Get("/api/v1/users", api.ListUsers)
	superadmin.Post("/api/v1/users", api.CreateUser)
	superadmin.Put("/api/v1/users/{id}", api.UpdateUser)
	superadmin.Delete("/api/v1/users/{id}", api.DeleteUser)
	superadmin.Get("/api/v1/items", api.ListItems)
	superadmin.Post("/api/v1/items", api.CreateItem)
	superadmin.Put("/api/v1/items/{id}", api.UpdateItem)
	superadmin.Delete("/api/v1/items/{id}", api.DeleteItem)

	routers := map[roles.Role]chi.Router{
		roles.RoleCustomer:   customer,
		roles.RoleStaff:      staff,
		roles.RoleAdmin:      admin,
		roles.RoleSuperadmin: superadmin,
	}

	for _, r := range routers {
		mountShared(r, api, c)
		r.NotFound(redirectTo("/"))
	}
	return routers
}
