// Пакет roles — закрытое перечисление ролей goresto.
// Ровно четыре роли, каждая отображается на собственное непересекающееся
// дерево маршрутов. Иерархии нет: superadmin концептуально выше admin,
// но деревья маршрутов независимы и не наследуются.
package roles

import "fmt"

// Role — роль пользователя.
type Role string

const (
	// RoleCustomer — посетитель ресторана (заказы, корзина, профиль).
	RoleCustomer Role = "customer"
	// RoleStaff — сотрудник зала (приём заказов, история заказов).
	RoleStaff Role = "staff"
	// RoleAdmin — администратор (дашборд, управление персоналом).
	RoleAdmin Role = "admin"
	// RoleSuperadmin — суперадминистратор (роли, пользователи, меню).
	RoleSuperadmin Role = "superadmin"
)

// all — все роли в фиксированном порядке.
// Порядок используется при проверке полноты таблицы маршрутов.
var all = []Role{RoleCustomer, RoleStaff, RoleAdmin, RoleSuperadmin}

// All возвращает все роли в фиксированном порядке (копия).
func All() []Role {
	result := make([]Role, len(all))
	copy(result, all)
	return result
}

// IsValid проверяет, является ли роль допустимой.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin, RoleSuperadmin:
		return true
	default:
		return false
	}
}

// Parse преобразует строку в Role.
// Возвращает ошибку для недопустимых значений — перечисление закрытое,
// динамических ролей нет.
func Parse(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("недопустимая роль: %q, допустимые: customer, staff, admin, superadmin", s)
	}
	return r, nil
}
