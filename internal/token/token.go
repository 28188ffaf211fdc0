// Пакет token — JWT access-токены для программных клиентов API.
// Браузер ходит с зашифрованным cookie, но API принимает и
// Bearer-токен (HS256), выдаваемый вместе с сессией при входе.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bigkaa/goresto/internal/domain/model"
	"github.com/bigkaa/goresto/internal/domain/roles"
)

// Claims — полезная нагрузка access-токена.
type Claims struct {
	jwt.RegisteredClaims
	// SID — идентификатор сессии (общий с cookie).
	SID string `json:"sid"`
	// Name — имя пользователя.
	Name string `json:"name"`
	// Email — email пользователя.
	Email string `json:"email"`
	// Role — роль пользователя.
	Role string `json:"role"`
	// Phone, Address — контактные данные.
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Manager выпускает и проверяет access-токены.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewManager создаёт менеджер токенов. Пустой секрет заменяется
// случайным ключом процесса: токены перестают переживать рестарт,
// но подпись пустым ключом невозможна. rand.Read не возвращает ошибок.
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	key := []byte(secret)
	if secret == "" {
		key = make([]byte, 32)
		rand.Read(key)
	}
	return &Manager{
		secret: key,
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue выпускает токен для пользователя и сессии sid.
func (m *Manager) Issue(user *model.User, sid string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		SID:     sid,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
		Phone:   user.Phone,
		Address: user.Address,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия токена и восстанавливает
// пользователя и sid. Ошибка — токен неизвестного издателя,
// просроченный или с недопустимой ролью.
func (m *Manager) Parse(raw string) (*model.User, string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, "", fmt.Errorf("невалидный токен: %w", err)
	}

	role, err := roles.Parse(claims.Role)
	if err != nil {
		return nil, "", fmt.Errorf("невалидный токен: %w", err)
	}
	if claims.SID == "" {
		return nil, "", errors.New("невалидный токен: отсутствует sid")
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, "", fmt.Errorf("невалидный токен: subject: %w", err)
	}

	return &model.User{
		ID:      userID,
		Name:    claims.Name,
		Email:   claims.Email,
		Role:    role,
		Phone:   claims.Phone,
		Address: claims.Address,
	}, claims.SID, nil
}
