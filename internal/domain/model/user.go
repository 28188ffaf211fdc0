// Пакет model — доменные сущности goresto.
package model

import "github.com/bigkaa/goresto/internal/domain/roles"

// User — идентичность аутентифицированного пользователя.
// Владелец — Auth-сервис; все остальные потребители читают снимок
// и никогда не изменяют его напрямую.
type User struct {
	// ID — уникальный идентификатор пользователя.
	ID int64 `json:"id"`
	// Name — отображаемое имя.
	Name string `json:"name"`
	// Email — электронная почта (уникальна в справочнике, без учёта регистра).
	Email string `json:"email"`
	// Role — роль из закрытого перечисления.
	Role roles.Role `json:"role"`
	// Phone — телефон (опционально).
	Phone string `json:"phone,omitempty"`
	// Address — адрес доставки (опционально).
	Address string `json:"address,omitempty"`
}
