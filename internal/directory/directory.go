// Пакет directory — справочник идентификации пользователей.
// По умолчанию аутентификация идёт по локальному mock-справочнику
// (любой секрет принимается, известен только email). Опционально
// подключается внешний каталог по HTTP.
package directory

import (
	"context"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// Directory проверяет учётные данные и возвращает пользователя.
// Неизвестный пользователь или неверный секрет — (nil, nil):
// отказ в аутентификации не является ошибкой инфраструктуры.
type Directory interface {
	Authenticate(ctx context.Context, email, secret string) (*model.User, error)
}
