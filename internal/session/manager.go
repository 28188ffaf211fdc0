package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/goresto/internal/domain/model"
)

// Имя cookie зашифрованной сессии.
const CookieName = "goresto_session"

// SessionData — данные сессии, хранящиеся в зашифрованном cookie.
// Cookie сессионный (без MaxAge): закрытие браузера разлогинивает.
type SessionData struct {
	// SID — идентификатор сессии (uuid). По нему привязывается
	// очередь уведомлений.
	SID string `json:"sid"`
	// User — аутентифицированный пользователь целиком
	// (справочник mock-данных мал, денормализация дешевле поиска).
	User *model.User `json:"user"`
	// IssuedAt — время входа (Unix timestamp).
	IssuedAt int64 `json:"issued_at"`
}

// Manager — менеджер сессионных cookie.
type Manager struct {
	codec  *Codec
	secure bool
}

// NewManager создаёт менеджер сессий поверх общего кодека.
func NewManager(codec *Codec, secure bool) *Manager {
	return &Manager{codec: codec, secure: secure}
}

// New создаёт данные новой сессии для пользователя.
func New(user *model.User) *SessionData {
	return &SessionData{
		SID:      uuid.NewString(),
		User:     user,
		IssuedAt: time.Now().Unix(),
	}
}

// Set устанавливает зашифрованный session cookie в ответ.
func (m *Manager) Set(w http.ResponseWriter, data *SessionData) error {
	encrypted, err := m.codec.Encrypt(data)
	if err != nil {
		return err
	}

	// MaxAge не задаётся: сессионный cookie живёт до закрытия браузера
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encrypted,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get извлекает и дешифрует SessionData из cookie запроса.
// Возвращает nil, nil если cookie отсутствует.
func (m *Manager) Get(r *http.Request) (*SessionData, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	var data SessionData
	if err := m.codec.Decrypt(cookie.Value, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Clear удаляет session cookie из ответа (logout).
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
