// auth.go — привязка идентичности запроса к контексту.
// Саму идентичность восстанавливает auth.Service (cookie или bearer),
// здесь только транспорт значения до handlers.
package middleware

import (
	"context"
	"net/http"

	"github.com/bigkaa/goresto/internal/session"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeySession — данные сессии в контексте запроса.
const ContextKeySession contextKey = "session"

// WithSession возвращает запрос с данными сессии в контексте.
func WithSession(r *http.Request, data *session.SessionData) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeySession, data))
}

// SessionFromContext извлекает данные сессии из контекста запроса.
// Возвращает nil для анонимного запроса.
func SessionFromContext(ctx context.Context) *session.SessionData {
	data, _ := ctx.Value(ContextKeySession).(*session.SessionData)
	return data
}
