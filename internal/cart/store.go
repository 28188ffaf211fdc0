// Пакет cart — персистентная корзина покупателя.
// Корзина живёт на стороне браузера в зашифрованном cookie и
// переживает перезапуск браузера (в отличие от сессии). Каждая
// мутация корзины немедленно записывает cookie (write-through),
// состояние никогда не расходится с «хранилищем».
package cart

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/session"
)

// Имя cookie корзины.
const CookieName = "goresto_cart"

// decodeFailures — счётчик повреждённых cookie корзины.
// Повреждение не фатально (корзина сбрасывается), но всплеск —
// признак смены ключа или вмешательства клиента.
var decodeFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gr_cart_decode_failures_total",
	Help: "Количество cookie корзины, которые не удалось расшифровать.",
})

// Store читает и пишет корзину в зашифрованный cookie.
type Store struct {
	codec  *session.Codec
	secure bool
	// maxAge — срок жизни cookie корзины в секундах.
	maxAge int
	logger *slog.Logger
}

// NewStore создаёт хранилище корзины поверх общего кодека.
func NewStore(codec *session.Codec, secure bool, maxAge int, logger *slog.Logger) *Store {
	return &Store{
		codec:  codec,
		secure: secure,
		maxAge: maxAge,
		logger: logger.With(slog.String("component", "cart")),
	}
}

// Load читает корзину из запроса. Отсутствующий или повреждённый
// cookie — пустая корзина, ошибкой не считается.
func (s *Store) Load(r *http.Request) *model.Cart {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			s.logger.Debug("ошибка чтения cookie корзины", slog.String("error", err.Error()))
		}
		return model.NewCart()
	}

	var lines []model.CartLine
	if err := s.codec.Decrypt(cookie.Value, &lines); err != nil {
		decodeFailures.Inc()
		s.logger.Debug("повреждённый cookie корзины, корзина сброшена",
			slog.String("error", err.Error()))
		return model.NewCart()
	}

	return &model.Cart{Lines: lines}
}

// Save записывает корзину в cookie ответа.
func (s *Store) Save(w http.ResponseWriter, c *model.Cart) error {
	encrypted, err := s.codec.Encrypt(c.Lines)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encrypted,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear удаляет cookie корзины (после оформления заказа).
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
